package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type entry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt int64           `json:"expiresAt,omitempty"`
}

// Cache wraps a [Storage] with the TTL envelope. The zero value is not
// usable; construct with [New].
type Cache struct {
	storage Storage
	now     func() time.Time
}

// New creates a [Cache] over the given storage.
func New(storage Storage) *Cache {
	return &Cache{
		storage: storage,
		now:     time.Now,
	}
}

// Put stores value under key with expiresAt = now + ttl, overwriting any
// existing entry. A ttl <= 0 stores the entry without an expiry. A value
// that cannot be serialized is the only fault and is never stored.
func (c *Cache) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", key, err)
	}

	e := entry{Value: raw}
	if ttl > 0 {
		e.ExpiresAt = c.now().Add(ttl).UnixMilli()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", key, err)
	}
	return c.storage.Set(ctx, key, string(data))
}

// Get loads the entry for key into out. It reports false on a missing,
// expired, or corrupt entry; an expired entry is deleted before returning.
// Corrupt entries never produce an error — they are misses. The error return
// is reserved for storage failures.
func (c *Cache) Get(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := c.storage.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil || len(e.Value) == 0 {
		return false, nil
	}

	if e.ExpiresAt > 0 && c.now().UnixMilli() > e.ExpiresAt {
		_ = c.storage.Delete(ctx, key)
		return false, nil
	}

	if err := json.Unmarshal(e.Value, out); err != nil {
		return false, nil
	}
	return true, nil
}

// Delete removes the entry for key unconditionally. Deleting an absent key
// is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.storage.Delete(ctx, key)
}
