package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter is a process-local Counter for single-instance deployments
// and tests. Same month-keyed semantics as the redis implementation.
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[string]int)}
}

func (m *MemoryCounter) Reserve(ctx context.Context, userID string, limit int) error {
	key := monthKey(userID, time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.counts[key] >= limit {
		return ErrLimitReached
	}
	m.counts[key]++
	return nil
}

func (m *MemoryCounter) Release(ctx context.Context, userID string) error {
	key := monthKey(userID, time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.counts[key] > 0 {
		m.counts[key]--
	}
	return nil
}

func (m *MemoryCounter) Used(ctx context.Context, userID string) (int, error) {
	key := monthKey(userID, time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.counts[key], nil
}
