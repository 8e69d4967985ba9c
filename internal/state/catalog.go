package state

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
)

// Catalog caches the last successful product listing. Concurrent fetches
// with an identical filter set share one backend request; a failed fetch
// leaves the previous listing intact and only records an error message.
type Catalog struct {
	Products *api.ProductService

	group singleflight.Group

	mu      sync.Mutex
	seq     uint64 // issued to each fetch
	applied uint64 // last fetch allowed to write state
	items   []domain.Product
	pending int
	errMsg  string
}

func NewCatalog(products *api.ProductService) *Catalog {
	return &Catalog{Products: products}
}

// Fetch lists products for the given filters. Calls that arrive while an
// identical request is outstanding coalesce onto it and observe the same
// result. Stale responses (a newer fetch already finished) are returned to
// their caller but do not overwrite the cached listing.
func (c *Catalog) Fetch(ctx context.Context, f api.Filters) ([]domain.Product, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.pending++
	c.mu.Unlock()

	v, err, _ := c.group.Do(f.Key(), func() (any, error) {
		return c.Products.List(ctx, f)
	})

	var items []domain.Product
	if v != nil {
		items = v.([]domain.Product)
	}

	c.mu.Lock()
	c.pending--
	if seq > c.applied {
		c.applied = seq
		if err == nil {
			c.items = items
			c.errMsg = ""
		} else {
			c.errMsg = api.Humanize(err)
		}
	}
	c.mu.Unlock()

	return items, err
}

// Snapshot exposes the container's current view: cached products, whether a
// fetch is in flight, and a human-readable error message (never a raw error).
func (c *Catalog) Snapshot() (products []domain.Product, loading bool, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	products = make([]domain.Product, len(c.items))
	copy(products, c.items)
	return products, c.pending > 0, c.errMsg
}
