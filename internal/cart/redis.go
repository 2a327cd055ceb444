package cart

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"

    "github.com/redis/go-redis/v9"

    "github.com/cinebook/cinema-booking/internal/model"
)

// RedisStore persists carts as JSON values in Redis under
// "cart:<customer_id>".  Carts carry no TTL: they survive reloads and
// are only removed by an explicit Clear after a successful checkout,
// matching the lifecycle of the persisted client-side cart this
// service replaces.
type RedisStore struct {
    rdb *redis.Client
}

// NewRedisStore wraps an established Redis client.  The client must be
// non-nil; callers that failed to connect should fall back to
// NewMemoryStore instead.
func NewRedisStore(rdb *redis.Client) *RedisStore {
    if rdb == nil {
        panic("nil redis client passed to NewRedisStore")
    }
    return &RedisStore{rdb: rdb}
}

func cartKey(customerID uint64) string {
    return fmt.Sprintf("cart:%d", customerID)
}

// Load fetches and decodes the customer's cart.  A missing key yields
// an empty cart, not an error.
func (s *RedisStore) Load(ctx context.Context, customerID uint64) (*Cart, error) {
    bs, err := s.rdb.Get(ctx, cartKey(customerID)).Bytes()
    if err != nil {
        if errors.Is(err, redis.Nil) {
            return New(), nil
        }
        return nil, fmt.Errorf("load cart: %w", err)
    }
    c := New()
    if err := json.Unmarshal(bs, c); err != nil {
        return nil, fmt.Errorf("decode cart: %w", err)
    }
    // Older payloads may carry null slices; normalize so handlers can
    // encode [] consistently.
    if c.Tickets == nil {
        c.Tickets = []model.CartTicket{}
    }
    if c.Products == nil {
        c.Products = []model.CartProduct{}
    }
    return c, nil
}

// Save encodes and writes the cart.
func (s *RedisStore) Save(ctx context.Context, customerID uint64, c *Cart) error {
    bs, err := json.Marshal(c)
    if err != nil {
        return fmt.Errorf("encode cart: %w", err)
    }
    if err := s.rdb.Set(ctx, cartKey(customerID), bs, 0).Err(); err != nil {
        return fmt.Errorf("save cart: %w", err)
    }
    return nil
}

// Clear deletes the persisted cart.
func (s *RedisStore) Clear(ctx context.Context, customerID uint64) error {
    if err := s.rdb.Del(ctx, cartKey(customerID)).Err(); err != nil {
        return fmt.Errorf("clear cart: %w", err)
    }
    return nil
}
