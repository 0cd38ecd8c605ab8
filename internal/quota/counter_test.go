package quota

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryCounterReserveUpToLimit(t *testing.T) {
	c := NewMemoryCounter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := c.Reserve(ctx, "user-1", 3); err != nil {
			t.Fatalf("reserve %d failed: %v", i+1, err)
		}
	}

	err := c.Reserve(ctx, "user-1", 3)
	if !errors.Is(err, ErrLimitReached) {
		t.Errorf("expected ErrLimitReached, got %v", err)
	}

	used, _ := c.Used(ctx, "user-1")
	if used != 3 {
		t.Errorf("expected 3 used, got %d", used)
	}
}

func TestMemoryCounterRelease(t *testing.T) {
	c := NewMemoryCounter()
	ctx := context.Background()

	if err := c.Reserve(ctx, "user-1", 1); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if err := c.Release(ctx, "user-1"); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := c.Reserve(ctx, "user-1", 1); err != nil {
		t.Errorf("reserve after release failed: %v", err)
	}
}

func TestMemoryCounterConcurrentReserve(t *testing.T) {
	c := NewMemoryCounter()
	ctx := context.Background()

	const attempts = 20
	const limit = 3

	var wg sync.WaitGroup
	wg.Add(attempts)
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			results <- c.Reserve(ctx, "user-1", limit)
		}()
	}

	wg.Wait()
	close(results)

	granted := 0
	for err := range results {
		if err == nil {
			granted++
		}
	}

	if granted != limit {
		t.Errorf("expected exactly %d grants, got %d", limit, granted)
	}
}
