package services

import (
	"context"
	"testing"

	"github.com/sahayuk/sahayuk/internal/constants"
	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	model "github.com/sahayuk/sahayuk/internal/models"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

func TestBidService_SubmitRules(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	workerID := env.createUser(t, "worker@example.com", "Vikram")
	task := env.postTask(t, clientID, "Needs a worker")

	ctx := context.Background()

	if _, err := env.bidService.Submit(ctx, task.ID, workerID, 0, ""); err != apperrors.ErrInvalidBidAmount {
		t.Errorf("expected invalid amount error, got %v", err)
	}

	if _, err := env.bidService.Submit(ctx, task.ID, clientID, 500, ""); err != apperrors.ErrOwnTaskBid {
		t.Errorf("expected own-task error, got %v", err)
	}

	bid, err := env.bidService.Submit(ctx, task.ID, workerID, 500, "I can do it")
	if err != nil {
		t.Fatalf("failed to submit bid: %v", err)
	}
	if bid.Status != constants.BidPending {
		t.Errorf("expected pending status, got %s", bid.Status)
	}

	if _, err := env.bidService.Submit(ctx, task.ID, workerID, 600, ""); err != apperrors.ErrDuplicateBid {
		t.Errorf("expected duplicate bid error, got %v", err)
	}
}

func TestBidService_AcceptLifecycle(t *testing.T) {
	env := newTestEnv(t)

	clientID := env.createUser(t, "client@example.com", "Asha")
	task := env.postTask(t, clientID, "Paint the fence")

	ctx := context.Background()

	workers := make([]string, 3)
	bids := make([]*model.Bid, 3)
	for i, email := range []string{"w1@example.com", "w2@example.com", "w3@example.com"} {
		workers[i] = env.createUser(t, email, "Worker")
		bid, err := env.bidService.Submit(ctx, task.ID, workers[i], float64(400+i*100), "")
		if err != nil {
			t.Fatalf("failed to submit bid %d: %v", i, err)
		}
		bids[i] = bid
	}

	accepted, err := env.bidService.Accept(ctx, bids[1].ID, clientID)
	if err != nil {
		t.Fatalf("failed to accept bid: %v", err)
	}
	if accepted.Status != constants.BidAccepted {
		t.Errorf("expected accepted status, got %s", accepted.Status)
	}

	updated, err := env.tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if updated.Status != constants.TaskAssigned {
		t.Errorf("expected assigned task, got %s", updated.Status)
	}
	if updated.WorkerID == nil || *updated.WorkerID != workers[1] {
		t.Errorf("expected task assigned to worker %s", workers[1])
	}
	if updated.AssignedAt == nil {
		t.Error("expected assigned timestamp")
	}

	for _, i := range []int{0, 2} {
		b, err := env.bids.FindByID(ctx, bids[i].ID)
		if err != nil {
			t.Fatalf("failed to reload bid: %v", err)
		}
		if b.Status != constants.BidRejected {
			t.Errorf("expected sibling bid %d rejected, got %s", i, b.Status)
		}
	}

	// A second accept must fail: the bid is already rejected.
	if _, err := env.bidService.Accept(ctx, bids[0].ID, clientID); err != apperrors.ErrBidNotPending {
		t.Errorf("expected not-pending error for rejected sibling, got %v", err)
	}

	env.drain()

	notifications := repository.NewNotificationRepository(env.db)
	assigned, err := notifications.ListByUser(ctx, workers[1], 0)
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	found := false
	for _, n := range assigned {
		if n.NotificationType == constants.NotifyTaskAssigned {
			found = true
			if n.RelatedTaskID == nil || *n.RelatedTaskID != task.ID {
				t.Error("expected assignment notification to reference the task")
			}
		}
	}
	if !found {
		t.Error("expected a task_assigned notification for the winner")
	}

	for _, i := range []int{0, 2} {
		rows, err := notifications.ListByUser(ctx, workers[i], 0)
		if err != nil {
			t.Fatalf("failed to list notifications: %v", err)
		}
		rejected := false
		for _, n := range rows {
			if n.NotificationType == constants.NotifyBidRejected {
				rejected = true
			}
		}
		if !rejected {
			t.Errorf("expected a bid_rejected notification for loser %d", i)
		}
	}
}

func TestBidService_AcceptAuthorization(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	strangerID := env.createUser(t, "stranger@example.com", "Meera")
	workerID := env.createUser(t, "worker@example.com", "Vikram")
	task := env.postTask(t, clientID, "Guarded task")

	ctx := context.Background()

	bid, err := env.bidService.Submit(ctx, task.ID, workerID, 500, "")
	if err != nil {
		t.Fatalf("failed to submit bid: %v", err)
	}

	if _, err := env.bidService.Accept(ctx, bid.ID, strangerID); err != apperrors.ErrForbidden {
		t.Errorf("expected forbidden for non-owner, got %v", err)
	}

	if err := env.bidService.Reject(ctx, bid.ID, strangerID); err != apperrors.ErrForbidden {
		t.Errorf("expected forbidden reject for non-owner, got %v", err)
	}
}

func TestBidService_RejectIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	workerID := env.createUser(t, "worker@example.com", "Vikram")
	task := env.postTask(t, clientID, "One shot")

	ctx := context.Background()

	bid, err := env.bidService.Submit(ctx, task.ID, workerID, 500, "")
	if err != nil {
		t.Fatalf("failed to submit bid: %v", err)
	}

	if err := env.bidService.Reject(ctx, bid.ID, clientID); err != nil {
		t.Fatalf("failed to reject: %v", err)
	}

	if _, err := env.bidService.Accept(ctx, bid.ID, clientID); err != apperrors.ErrBidNotPending {
		t.Errorf("expected not-pending error after reject, got %v", err)
	}
	if err := env.bidService.Reject(ctx, bid.ID, clientID); err != apperrors.ErrBidNotPending {
		t.Errorf("expected second reject to fail, got %v", err)
	}
}

func TestBidService_RejectCannotOverwriteAcceptedBid(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	workerID := env.createUser(t, "worker@example.com", "Vikram")
	task := env.postTask(t, clientID, "Contested task")

	ctx := context.Background()

	bid, err := env.bidService.Submit(ctx, task.ID, workerID, 500, "")
	if err != nil {
		t.Fatalf("failed to submit bid: %v", err)
	}

	// A reject that read the bid as pending before this accept committed
	// must not land afterwards.
	stale, err := env.bids.FindByID(ctx, bid.ID)
	if err != nil {
		t.Fatalf("failed to load bid: %v", err)
	}
	if stale.Status != constants.BidPending {
		t.Fatalf("expected pending bid, got %s", stale.Status)
	}

	if _, err := env.bidService.Accept(ctx, bid.ID, clientID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	err = env.bids.TransitionStatus(ctx, stale.ID, constants.BidPending, constants.BidRejected)
	if err != repository.ErrStaleBidStatus {
		t.Errorf("expected stale-status error for the late reject, got %v", err)
	}
	if err := env.bidService.Reject(ctx, bid.ID, clientID); err != apperrors.ErrBidNotPending {
		t.Errorf("expected not-pending error rejecting an accepted bid, got %v", err)
	}

	reloaded, err := env.bids.FindByID(ctx, bid.ID)
	if err != nil {
		t.Fatalf("failed to reload bid: %v", err)
	}
	if reloaded.Status != constants.BidAccepted {
		t.Errorf("accepted bid must stay accepted, got %s", reloaded.Status)
	}

	assigned, err := env.tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if assigned.Status != constants.TaskAssigned || assigned.WorkerID == nil || *assigned.WorkerID != workerID {
		t.Errorf("task must stay assigned to the accepted worker, got %+v", assigned)
	}
}

func TestBidService_FailedAcceptLeavesBidsPending(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	w1 := env.createUser(t, "w1@example.com", "Vikram")
	w2 := env.createUser(t, "w2@example.com", "Meera")
	task := env.postTask(t, clientID, "Slipping away")

	ctx := context.Background()

	bid1, err := env.bidService.Submit(ctx, task.ID, w1, 500, "")
	if err != nil {
		t.Fatalf("failed to submit bid: %v", err)
	}
	bid2, err := env.bidService.Submit(ctx, task.ID, w2, 450, "")
	if err != nil {
		t.Fatalf("failed to submit bid: %v", err)
	}

	// The task gets assigned elsewhere before the client's accept runs.
	current, err := env.tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to load task: %v", err)
	}
	current.Status = constants.TaskAssigned
	current.WorkerID = &w2
	if err := env.tasks.Update(ctx, current); err != nil {
		t.Fatalf("failed to assign task: %v", err)
	}

	if _, err := env.bidService.Accept(ctx, bid1.ID, clientID); err != apperrors.ErrTaskNotOpen {
		t.Fatalf("expected not-open error, got %v", err)
	}

	for _, id := range []string{bid1.ID, bid2.ID} {
		b, err := env.bids.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("failed to reload bid: %v", err)
		}
		if b.Status != constants.BidPending {
			t.Errorf("failed accept must leave bid %s pending, got %s", id, b.Status)
		}
	}
}

func TestBidService_SubmitRequiresCompleteProfile(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	bareID := env.createBareUser(t, "newbie@example.com")
	task := env.postTask(t, clientID, "Not for newbies yet")

	if _, err := env.bidService.Submit(context.Background(), task.ID, bareID, 500, ""); err != apperrors.ErrProfileIncomplete {
		t.Errorf("expected incomplete-profile error, got %v", err)
	}
}

func TestBidService_BidOnClosedTask(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	w1 := env.createUser(t, "w1@example.com", "Vikram")
	w2 := env.createUser(t, "w2@example.com", "Meera")
	task := env.postTask(t, clientID, "Closing soon")

	ctx := context.Background()

	bid, err := env.bidService.Submit(ctx, task.ID, w1, 500, "")
	if err != nil {
		t.Fatalf("failed to submit bid: %v", err)
	}
	if _, err := env.bidService.Accept(ctx, bid.ID, clientID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	if _, err := env.bidService.Submit(ctx, task.ID, w2, 450, ""); err != apperrors.ErrTaskNotOpen {
		t.Errorf("expected not-open error for assigned task, got %v", err)
	}
}

func TestBidService_ListAuthorization(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	workerID := env.createUser(t, "worker@example.com", "Vikram")
	task := env.postTask(t, clientID, "Private bids")

	ctx := context.Background()

	if _, err := env.bidService.Submit(ctx, task.ID, workerID, 500, ""); err != nil {
		t.Fatalf("failed to submit bid: %v", err)
	}

	if _, err := env.bidService.ListForTask(ctx, task.ID, workerID); err != apperrors.ErrForbidden {
		t.Errorf("expected forbidden for non-owner listing, got %v", err)
	}

	bids, err := env.bidService.ListForTask(ctx, task.ID, clientID)
	if err != nil {
		t.Fatalf("owner should list bids: %v", err)
	}
	if len(bids) != 1 {
		t.Errorf("expected 1 bid, got %d", len(bids))
	}
}
