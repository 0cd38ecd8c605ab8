package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	model "github.com/sahayuk/sahayuk/internal/models"
)

// ErrStaleBidStatus is returned when a status transition finds the bid no
// longer in the expected state, usually because a concurrent accept or
// reject got there first.
var ErrStaleBidStatus = errors.New("bid status changed concurrently")

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(ctx context.Context, bid *model.Bid) error {
	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}
	bid.Status = constants.BidPending
	bid.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *BidRepository) FindByID(ctx context.Context, id string) (*model.Bid, error) {
	var bid model.Bid
	err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepository) ListByTask(ctx context.Context, taskID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepository) ListByWorker(ctx context.Context, workerID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at desc").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepository) ExistsForWorker(ctx context.Context, taskID, workerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("task_id = ? AND worker_id = ?", taskID, workerID).
		Count(&count).Error
	return count > 0, err
}

// TransitionStatus moves the bid from one status to another in a single
// conditional update, so a write based on a stale read cannot land.
// Accepted and rejected are terminal states.
func (r *BidRepository) TransitionStatus(ctx context.Context, id string, from, to constants.BidStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleBidStatus
	}
	return nil
}

// RejectSiblings marks every still-pending bid on the task except the
// accepted one as rejected and returns the ids of the losing workers.
func (r *BidRepository) RejectSiblings(ctx context.Context, taskID, acceptedID string) ([]string, error) {
	var losers []model.Bid
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND id <> ? AND status = ?", taskID, acceptedID, constants.BidPending).
		Find(&losers).Error
	if err != nil {
		return nil, err
	}

	if len(losers) == 0 {
		return nil, nil
	}

	err = r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("task_id = ? AND id <> ? AND status = ?", taskID, acceptedID, constants.BidPending).
		Update("status", constants.BidRejected).Error
	if err != nil {
		return nil, err
	}

	workerIDs := make([]string, 0, len(losers))
	for _, b := range losers {
		workerIDs = append(workerIDs, b.WorkerID)
	}
	return workerIDs, nil
}
