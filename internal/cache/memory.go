package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

type entry struct {
	body    []byte
	expires time.Time
}

// Memory is an in-process Cache for single-instance deployments and tests.
type Memory struct {
	mu      sync.RWMutex
	gens    map[string]uint64
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{
		gens:    make(map[string]uint64),
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Invalidate(_ context.Context, path string, scope Scope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[generationKey(path, scope)]++
	return nil
}

func (m *Memory) Version(_ context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := versionKeys(path)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.FormatUint(m.gens[k], 10)
	}
	return strings.Join(parts, "."), nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if m.now().After(e.expires) {
		m.mu.Lock()
		// A Set may have replaced the entry since the read lock was dropped.
		if cur, ok := m.entries[key]; ok && m.now().After(cur.expires) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.body, true, nil
}

func (m *Memory) Set(_ context.Context, key string, body []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{body: append([]byte(nil), body...), expires: m.now().Add(ttl)}
	return nil
}
