package gate

import (
	"context"
	"sync"
	"time"
)

// MemoryGate is the single-process gate. The map works like a TTL cache:
// a held key past its deadline counts as free again.
type MemoryGate struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]time.Time // key -> lock deadline
}

func NewMemoryGate(ttl time.Duration) *MemoryGate {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &MemoryGate{
		ttl: ttl,
		m:   make(map[string]time.Time),
	}
}

func (g *MemoryGate) TryAcquire(_ context.Context, key string) (bool, error) {
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if exp, ok := g.m[key]; ok && now.Before(exp) {
		return false, nil
	}
	g.m[key] = now.Add(g.ttl)
	return true, nil
}

func (g *MemoryGate) Release(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()
	return nil
}
