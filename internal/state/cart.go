// Package state holds the client-local state containers: cart, catalog,
// session and wishlist. Each container is the single source of truth for its
// slice of state; handlers never keep private copies.
package state

import (
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
)

// Line is one cart entry: a product plus one selected variant snapshot. The
// price is frozen at add time; the backend recomputes at checkout.
type Line struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Slug        string          `json:"slug"`
	Image       string          `json:"image,omitempty"`
	VariantID   string          `json:"variantId"`
	SKU         string          `json:"sku"`
	Label       string          `json:"label"` // e.g. "1.5 kg"
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Stock       int             `json:"stock"` // known stock at add time, advisory only
	Quantity    int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OverStock reports whether the quantity exceeds the stock known at add time.
// It is a soft signal for the UI; nothing here blocks the mutation.
func (l Line) OverStock() bool { return l.Quantity > l.Stock }

// Cart is the per-session cart container. Lines are ordered and keyed by
// (productID, variantID): adding an existing pair increments its quantity
// instead of creating a second line.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	store *storage.Store
	key   string
}

// Add inserts or increments a line and persists. qty below 1 is treated as 1.
// Exhausted stock does not error: the UI disables the action and the server
// re-checks at checkout.
func (c *Cart) Add(p domain.Product, v domain.Variant, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID && c.lines[i].VariantID == v.ID {
			c.lines[i].Quantity += qty
			c.persistLocked()
			return
		}
	}
	img := ""
	if len(p.Images) > 0 {
		img = p.Images[0]
	}
	c.lines = append(c.lines, Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		Slug:        p.Slug,
		Image:       img,
		VariantID:   v.ID,
		SKU:         v.SKU,
		Label:       v.Weight.String() + " " + v.Unit,
		UnitPrice:   v.Price(),
		Stock:       v.Stock,
		Quantity:    qty,
	})
	c.persistLocked()
}

// Remove drops the matching line. Removing an absent pair is a no-op.
func (c *Cart) Remove(productID, variantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].VariantID == variantID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persistLocked()
			return
		}
	}
}

// UpdateQuantity sets a line's quantity, clamped to at least 1. Quantities
// above known stock are allowed; the line reports OverStock for the UI.
func (c *Cart) UpdateQuantity(productID, variantID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].VariantID == variantID {
			c.lines[i].Quantity = qty
			c.persistLocked()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.persistLocked()
}

// Lines returns a copy so callers cannot desync the container.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount is the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the exact sum of unitPrice × quantity across all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// persistLocked writes the serialized cart through the storage adapter. A
// storage failure is logged and the in-memory state stays valid.
func (c *Cart) persistLocked() {
	b, err := json.Marshal(c.lines)
	if err != nil {
		applog.Error(nil, "cart.persist.marshal", err, map[string]any{"key": c.key})
		return
	}
	if err := c.store.Set(c.key, string(b)); err != nil {
		applog.Error(nil, "cart.persist.save", err, map[string]any{"key": c.key})
	}
}

// CartStore owns one cart container per session ID.
type CartStore struct {
	mu    sync.Mutex
	store *storage.Store
	carts map[string]*Cart
}

func NewCartStore(store *storage.Store) *CartStore {
	return &CartStore{store: store, carts: map[string]*Cart{}}
}

// Get returns the session's cart, hydrating it from storage on first access.
// A blob that fails to parse is logged and cleared; the cart starts empty
// rather than crashing the request.
func (s *CartStore) Get(sid string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sid]; ok {
		return c
	}
	c := &Cart{store: s.store, key: "cart:" + sid}
	if raw, ok, err := s.store.Get(c.key); err != nil {
		applog.Error(nil, "cart.hydrate.read", err, map[string]any{"key": c.key})
	} else if ok {
		var lines []Line
		if uerr := json.Unmarshal([]byte(raw), &lines); uerr != nil {
			applog.Error(nil, "cart.hydrate.corrupt", uerr, map[string]any{"key": c.key})
			_ = s.store.Delete(c.key)
		} else {
			c.lines = lines
		}
	}
	s.carts[sid] = c
	return c
}
