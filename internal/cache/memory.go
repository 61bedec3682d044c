package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

// MemoryCache implements Cache interface using in-memory storage
type MemoryCache struct {
	mu        sync.RWMutex
	data      map[string]cacheItem
	done      chan struct{}
	closeOnce sync.Once
}

type cacheItem struct {
	value      []byte
	expiration time.Time
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

// NewMemoryCache creates an in-memory cache that sweeps expired entries
// every interval.
func NewMemoryCache(interval time.Duration) *MemoryCache {
	mc := &MemoryCache{
		data: make(map[string]cacheItem),
		done: make(chan struct{}),
	}
	go mc.sweep(interval)
	return mc
}

// Get retrieves a value from cache
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.data[key]
	if !ok || item.expired(time.Now()) {
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

// Set stores a value in cache. A zero ttl never expires.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := cacheItem{value: value}
	if ttl > 0 {
		item.expiration = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.data[key] = item
	m.mu.Unlock()
	return nil
}

// Delete removes a value from cache
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Exists checks if a key exists
func (m *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.data[key]
	return ok && !item.expired(time.Now()), nil
}

// Clear removes all keys matching the glob pattern
func (m *MemoryCache) Clear(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, item := range m.data {
				if item.expired(now) {
					delete(m.data, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Close stops the sweeper. It is safe to call more than once.
func (m *MemoryCache) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}
