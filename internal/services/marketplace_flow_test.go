package services

import (
	"context"
	"testing"

	"github.com/sahayuk/sahayuk/internal/constants"
)

// TestMarketplaceFlow walks the happy path end to end: a client posts a
// task, a worker bids, the client accepts, the worker finishes and both
// sides review each other.
func TestMarketplaceFlow(t *testing.T) {
	env := newTestEnv(t)

	ctx := context.Background()

	clientID := env.createUser(t, "client@example.com", "Asha")
	workerID := env.createUser(t, "worker@example.com", "Vikram")

	used, err := env.quota.Used(ctx, clientID)
	if err != nil {
		t.Fatalf("failed to read quota: %v", err)
	}
	if used != 0 {
		t.Fatalf("expected fresh quota, got %d used", used)
	}

	task := env.postTask(t, clientID, "Assemble a bookshelf")

	used, err = env.quota.Used(ctx, clientID)
	if err != nil {
		t.Fatalf("failed to read quota: %v", err)
	}
	if used != 1 {
		t.Errorf("expected 1 quota slot used after posting, got %d", used)
	}

	bid, err := env.bidService.Submit(ctx, task.ID, workerID, 500, "Available today")
	if err != nil {
		t.Fatalf("failed to bid: %v", err)
	}

	accepted, err := env.bidService.Accept(ctx, bid.ID, clientID)
	if err != nil {
		t.Fatalf("failed to accept: %v", err)
	}
	if accepted.Status != constants.BidAccepted {
		t.Errorf("expected accepted bid, got %s", accepted.Status)
	}

	assigned, err := env.tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if assigned.Status != constants.TaskAssigned || assigned.WorkerID == nil || *assigned.WorkerID != workerID {
		t.Fatalf("expected task assigned to %s, got %+v", workerID, assigned)
	}

	completions := NewCompletionService(env.db, env.notifier)
	completion, err := completions.Submit(ctx, task.ID, workerID, "Shelf is up", "")
	if err != nil {
		t.Fatalf("failed to submit completion: %v", err)
	}
	if err := completions.Approve(ctx, completion.ID, clientID, 5, "solid work"); err != nil {
		t.Fatalf("failed to approve: %v", err)
	}

	done, err := env.tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if done.Status != constants.TaskCompleted || done.CompletedAt == nil {
		t.Errorf("expected completed task with timestamp, got %+v", done)
	}

	env.drain()
}
