package cart

import (
	"context"
	"sync"

	"github.com/erazemk/kosarica/internal/storage"
)

// keyPrefix namespaces the persistence slot per application version.
const keyPrefix = "cart/v1/"

// Registry hands out one Store per cart id, hydrating each from storage the
// first time it is seen in this process.
type Registry struct {
	mu     sync.Mutex
	kv     storage.KV
	stores map[string]*Store
}

// NewRegistry creates a registry backed by the given storage collaborator.
func NewRegistry(kv storage.KV) *Registry {
	return &Registry{
		kv:     kv,
		stores: make(map[string]*Store),
	}
}

// Get returns the store for a cart id, creating and hydrating it on first use.
func (r *Registry) Get(ctx context.Context, cartID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[cartID]; ok {
		return s
	}
	s := NewStore(r.kv, keyPrefix+cartID)
	s.Load(ctx)
	r.stores[cartID] = s
	return s
}
