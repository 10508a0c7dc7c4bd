package scanner

import (
	"context"
	"sync"
	"time"
)

// Cooldown gates repeat alerts for an unchanged opportunity. Allow returns
// true for the first claim of a key inside the window and false until the
// window lapses.
type Cooldown interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryCooldown is a process-local Cooldown. It is the fallback when no
// Redis is configured; restarts forget claims, which at worst repeats one
// alert. Safe for concurrent use.
type MemoryCooldown struct {
	mu   sync.Mutex
	seen map[string]time.Time // key -> claim time
	ttl  time.Duration
}

// NewMemoryCooldown creates an in-memory cooldown with the given window.
func NewMemoryCooldown(ttl time.Duration) *MemoryCooldown {
	return &MemoryCooldown{
		seen: make(map[string]time.Time),
		ttl:  ttl,
	}
}

// Allow claims the key if it is not held. Expired entries are purged on the
// way through, keeping the map bounded by the number of live opportunities.
func (m *MemoryCooldown) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for k, ts := range m.seen {
		if now.Sub(ts) >= m.ttl {
			delete(m.seen, k)
		}
	}

	if ts, ok := m.seen[key]; ok && now.Sub(ts) < m.ttl {
		return false, nil
	}
	m.seen[key] = now
	return true, nil
}
