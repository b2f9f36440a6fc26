package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   string
	expires time.Time
}

// memoryCache backs single-process deployments and tests.
type memoryCache struct {
	mu     sync.Mutex
	items  map[string]entry
	prefix string
	now    func() time.Time
}

func NewMemory(prefix string) Cache {
	return &memoryCache{items: make(map[string]entry), prefix: prefix, now: time.Now}
}

// caller holds mu
func (m *memoryCache) live(key string) (entry, bool) {
	e, ok := m.items[key]
	if !ok {
		return entry{}, false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.items, key)
		return entry{}, false
	}
	return e, true
}

func (m *memoryCache) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

func (m *memoryCache) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(key); ok {
		return false, nil
	}
	m.items[key] = entry{value: value, expires: m.expiry(ttl)}
	return true, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = entry{value: value, expires: m.expiry(ttl)}
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(key)
	if !ok {
		return "", nil
	}
	return e.value, nil
}

func (m *memoryCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *memoryCache) Key(parts ...string) string {
	return joinKey(m.prefix, parts)
}
