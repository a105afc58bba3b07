package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a process-local sliding window. Each process keeps its
// own counters, so it is not authoritative when more than one instance runs.
type MemoryLimiter struct {
	policy  Policy
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*clientWindow
}

type clientWindow struct {
	timestamps []time.Time
}

// NewMemoryLimiter creates a MemoryLimiter for the given policy.
func NewMemoryLimiter(policy Policy) *MemoryLimiter {
	return &MemoryLimiter{
		policy:  policy,
		now:     time.Now,
		clients: make(map[string]*clientWindow),
	}
}

func (l *MemoryLimiter) Authoritative() bool { return false }

func (l *MemoryLimiter) Limit(_ context.Context, identifier string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	cw, ok := l.clients[identifier]
	if !ok {
		cw = &clientWindow{}
		l.clients[identifier] = cw
	}
	cw.prune(now.Add(-l.policy.Window))

	if len(cw.timestamps) >= l.policy.Max {
		return newResult(l.policy, false, len(cw.timestamps), cw.timestamps[0]), nil
	}

	cw.timestamps = append(cw.timestamps, now)
	return newResult(l.policy, true, len(cw.timestamps), cw.timestamps[0]), nil
}

// StartJanitor removes idle identifiers every interval until ctx is done.
func (l *MemoryLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.cleanup()
			}
		}
	}()
}

func (l *MemoryLimiter) cleanup() {
	windowStart := l.now().Add(-l.policy.Window)

	l.mu.Lock()
	defer l.mu.Unlock()
	for id, cw := range l.clients {
		cw.prune(windowStart)
		if len(cw.timestamps) == 0 {
			delete(l.clients, id)
		}
	}
}

// prune drops timestamps at or before windowStart, filtering in place.
func (cw *clientWindow) prune(windowStart time.Time) {
	valid := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	cw.timestamps = valid
}
