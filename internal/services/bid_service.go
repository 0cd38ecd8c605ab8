package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	model "github.com/sahayuk/sahayuk/internal/models"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

// BidService owns the pending → accepted/rejected state machine.
// Acceptance runs in a single transaction so the task row and every
// sibling bid move together or not at all.
type BidService struct {
	db          *gorm.DB
	taskRepo    *repository.TaskRepository
	bidRepo     *repository.BidRepository
	profileRepo *repository.ProfileRepository
	notifier    *Notifier
}

func NewBidService(db *gorm.DB, notifier *Notifier) *BidService {
	return &BidService{
		db:          db,
		taskRepo:    repository.NewTaskRepository(db),
		bidRepo:     repository.NewBidRepository(db),
		profileRepo: repository.NewProfileRepository(db),
		notifier:    notifier,
	}
}

// Submit places a pending bid on an open task. A worker gets one bid per
// task, enforced both by a pre-check and by the unique index underneath.
func (s *BidService) Submit(
	ctx context.Context,
	taskID, workerID string,
	amount float64,
	message string,
) (*model.Bid, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidBidAmount
	}

	profile, err := s.profileRepo.FindByUserID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	if !profile.Completed() {
		return nil, apperrors.ErrProfileIncomplete
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if task.ClientID == workerID {
		return nil, apperrors.ErrOwnTaskBid
	}
	if task.Status != constants.TaskOpen {
		return nil, apperrors.ErrTaskNotOpen
	}

	exists, err := s.bidRepo.ExistsForWorker(ctx, taskID, workerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateBid
	}

	bid := &model.Bid{
		TaskID:    taskID,
		WorkerID:  workerID,
		BidAmount: amount,
		Message:   strings.TrimSpace(message),
	}

	if err := s.bidRepo.Create(ctx, bid); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateBid
		}
		return nil, err
	}

	s.notifier.Enqueue(NotificationEvent{
		Kind:    constants.NotifyNewBid,
		UserID:  task.ClientID,
		TaskID:  taskID,
		ActorID: workerID,
		Amount:  amount,
	})

	return bid, nil
}

// Accept marks the bid accepted, assigns the task to the bidder and
// rejects every sibling bid, all inside one transaction. It fails with a
// conflict when the task has already been assigned by a racing accept.
func (s *BidService) Accept(ctx context.Context, bidID, clientID string) (*model.Bid, error) {
	var accepted *model.Bid
	var losers []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bids := repository.NewBidRepository(tx)
		tasks := repository.NewTaskRepository(tx)

		bid, err := bids.FindByID(ctx, bidID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBidNotFound
			}
			return err
		}
		if bid.Status != constants.BidPending {
			return apperrors.ErrBidNotPending
		}

		task, err := tasks.FindByID(ctx, bid.TaskID)
		if err != nil {
			return err
		}
		if task.ClientID != clientID {
			return apperrors.ErrForbidden
		}
		if task.Status != constants.TaskOpen {
			return apperrors.ErrTaskNotOpen
		}

		if err := bids.TransitionStatus(ctx, bid.ID, constants.BidPending, constants.BidAccepted); err != nil {
			if errors.Is(err, repository.ErrStaleBidStatus) {
				return apperrors.ErrBidNotPending
			}
			return err
		}

		now := time.Now().UTC()
		task.Status = constants.TaskAssigned
		task.WorkerID = &bid.WorkerID
		task.AssignedAt = &now
		if err := tasks.Update(ctx, task); err != nil {
			if errors.Is(err, repository.ErrOptimisticLock) {
				return apperrors.ErrTaskNotOpen
			}
			return err
		}

		losers, err = bids.RejectSiblings(ctx, task.ID, bid.ID)
		if err != nil {
			return err
		}

		bid.Status = constants.BidAccepted
		accepted = bid
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Enqueue(NotificationEvent{
		Kind:   constants.NotifyTaskAssigned,
		UserID: accepted.WorkerID,
		TaskID: accepted.TaskID,
		Amount: accepted.BidAmount,
	})
	for _, workerID := range losers {
		s.notifier.Enqueue(NotificationEvent{
			Kind:   constants.NotifyBidRejected,
			UserID: workerID,
			TaskID: accepted.TaskID,
		})
	}

	return accepted, nil
}

// Reject turns a pending bid down. Terminal: a rejected bid never comes
// back.
func (s *BidService) Reject(ctx context.Context, bidID, clientID string) error {
	bid, err := s.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBidNotFound
		}
		return err
	}
	if bid.Status != constants.BidPending {
		return apperrors.ErrBidNotPending
	}

	task, err := s.taskRepo.FindByID(ctx, bid.TaskID)
	if err != nil {
		return err
	}
	if task.ClientID != clientID {
		return apperrors.ErrForbidden
	}

	// The write only lands if the bid is still pending. A racing accept
	// that committed after the read above wins, not this reject.
	if err := s.bidRepo.TransitionStatus(ctx, bidID, constants.BidPending, constants.BidRejected); err != nil {
		if errors.Is(err, repository.ErrStaleBidStatus) {
			return apperrors.ErrBidNotPending
		}
		return err
	}

	s.notifier.Enqueue(NotificationEvent{
		Kind:   constants.NotifyBidRejected,
		UserID: bid.WorkerID,
		TaskID: bid.TaskID,
	})

	return nil
}

// ListForTask returns the bids on a task; only the task owner may look.
func (s *BidService) ListForTask(ctx context.Context, taskID, callerID string) ([]model.Bid, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	if task.ClientID != callerID {
		return nil, apperrors.ErrForbidden
	}

	return s.bidRepo.ListByTask(ctx, taskID)
}

func (s *BidService) ListForWorker(ctx context.Context, workerID string) ([]model.Bid, error) {
	return s.bidRepo.ListByWorker(ctx, workerID)
}
