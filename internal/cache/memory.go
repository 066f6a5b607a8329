package cache

import (
	"context"
	"sync"
	"time"

	"github.com/iwvelando/calc-widgets/pkg/constants"
)

type memoryEntry struct {
	value   string
	expires time.Time
}

// Memory is an in-process cache bounded by entry count. When full, the
// oldest insertion is evicted.
type Memory struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	entries    map[string]memoryEntry
	order      []string
	now        func() time.Time
}

// NewMemory returns a memory cache holding at most maxEntries values.
func NewMemory(maxEntries int, ttl time.Duration) *Memory {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheEntries
	}
	return &Memory{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
	}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if m.now().After(e.expires) {
		delete(m.entries, key)
		m.forget(key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = memoryEntry{value: value, expires: m.now().Add(m.ttl)}

	for len(m.entries) > m.maxEntries && len(m.order) > 0 {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	return nil
}

// forget removes key from the insertion order so a later Set starts it afresh
// at the back.
func (m *Memory) forget(key string) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close implements Cache.
func (m *Memory) Close() error { return nil }
