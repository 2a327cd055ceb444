package cart

import (
    "context"
    "sync"
)

// Store persists carts between requests, keyed by customer ID.  Load
// returns an empty cart when the customer has none; Clear removes the
// persisted state entirely.  Implementations must be safe for
// concurrent use.
type Store interface {
    Load(ctx context.Context, customerID uint64) (*Cart, error)
    Save(ctx context.Context, customerID uint64, c *Cart) error
    Clear(ctx context.Context, customerID uint64) error
}

// MemoryStore keeps carts in process memory.  It backs tests and is
// the fallback when Redis is unreachable at startup; carts then do not
// survive a restart, which mirrors a cleared browser session.
type MemoryStore struct {
    mu    sync.Mutex
    carts map[uint64]*Cart
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
    return &MemoryStore{carts: make(map[uint64]*Cart)}
}

// Load returns a copy of the stored cart, or a fresh empty cart when
// none exists.
func (s *MemoryStore) Load(ctx context.Context, customerID uint64) (*Cart, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    c, ok := s.carts[customerID]
    if !ok {
        return New(), nil
    }
    return c.clone(), nil
}

// Save stores a copy of the cart for the customer.
func (s *MemoryStore) Save(ctx context.Context, customerID uint64, c *Cart) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.carts[customerID] = c.clone()
    return nil
}

// Clear removes the customer's cart.
func (s *MemoryStore) Clear(ctx context.Context, customerID uint64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.carts, customerID)
    return nil
}
