package state

import (
	"encoding/json"
	"time"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
)

// ConsentStore persists the cookie-consent answer per session.
type ConsentStore struct {
	store *storage.Store
}

func NewConsentStore(store *storage.Store) *ConsentStore {
	return &ConsentStore{store: store}
}

// Answered reports whether the visitor already responded to the banner, and
// what they answered. Corrupt blobs read as unanswered.
func (c *ConsentStore) Answered(sid string) (domain.CookieConsent, bool) {
	raw, ok, err := c.store.Get("consent:" + sid)
	if err != nil || !ok {
		return domain.CookieConsent{}, false
	}
	var cc domain.CookieConsent
	if uerr := json.Unmarshal([]byte(raw), &cc); uerr != nil {
		applog.Error(nil, "consent.hydrate.corrupt", uerr, map[string]any{"sid": sid})
		_ = c.store.Delete("consent:" + sid)
		return domain.CookieConsent{}, false
	}
	return cc, true
}

func (c *ConsentStore) Set(sid string, accepted bool) {
	cc := domain.CookieConsent{Accepted: accepted, AnsweredAt: time.Now().UTC().Format(time.RFC3339)}
	b, _ := json.Marshal(cc)
	if err := c.store.Set("consent:"+sid, string(b)); err != nil {
		applog.Error(nil, "consent.persist", err, map[string]any{"sid": sid})
	}
}
