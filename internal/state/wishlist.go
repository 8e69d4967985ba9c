package state

import (
	"encoding/json"
	"sync"

	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
)

// WishlistStore keeps a session-local set of saved product IDs, persisted
// like the cart. Saving twice is a no-op.
type WishlistStore struct {
	mu    sync.Mutex
	store *storage.Store
	sets  map[string][]string
}

func NewWishlistStore(store *storage.Store) *WishlistStore {
	return &WishlistStore{store: store, sets: map[string][]string{}}
}

func (w *WishlistStore) Save(sid, productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := w.loadLocked(sid)
	for _, id := range ids {
		if id == productID {
			return
		}
	}
	w.sets[sid] = append(ids, productID)
	w.persistLocked(sid)
}

func (w *WishlistStore) Unsave(sid, productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := w.loadLocked(sid)
	for i, id := range ids {
		if id == productID {
			w.sets[sid] = append(ids[:i], ids[i+1:]...)
			w.persistLocked(sid)
			return
		}
	}
}

func (w *WishlistStore) List(sid string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := w.loadLocked(sid)
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func (w *WishlistStore) Has(sid, productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range w.loadLocked(sid) {
		if id == productID {
			return true
		}
	}
	return false
}

func (w *WishlistStore) loadLocked(sid string) []string {
	if ids, ok := w.sets[sid]; ok {
		return ids
	}
	var ids []string
	if raw, ok, err := w.store.Get("wishlist:" + sid); err == nil && ok {
		if uerr := json.Unmarshal([]byte(raw), &ids); uerr != nil {
			applog.Error(nil, "wishlist.hydrate.corrupt", uerr, map[string]any{"sid": sid})
			_ = w.store.Delete("wishlist:" + sid)
			ids = nil
		}
	}
	w.sets[sid] = ids
	return ids
}

func (w *WishlistStore) persistLocked(sid string) {
	b, _ := json.Marshal(w.sets[sid])
	if err := w.store.Set("wishlist:"+sid, string(b)); err != nil {
		applog.Error(nil, "wishlist.persist", err, map[string]any{"sid": sid})
	}
}
