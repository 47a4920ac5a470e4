// Package cache stores rendered API responses for a short time so repeated page
// views do not hit the listings API.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// A Store holds byte values under string keys for a limited time.
// A miss and a backend failure both report false.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// MemoryStore keeps values in process memory.
//
// Expired keys are evicted on Set. Restarts reset the store.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) {
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}

	m.entries[key] = memoryEntry{value: value, expires: now.Add(m.ttl)}
}

// RedisStore keeps values in Redis with a fixed expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore connects to the Redis server at rawURL, e.g. redis://localhost:6379/0.
func NewRedisStore(rawURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	return &RedisStore{
		client: redis.NewClient(opts),
		ttl:    ttl,
		prefix: "findaccommodation:",
	}, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) {
	r.client.Set(ctx, r.prefix+key, value, r.ttl)
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
