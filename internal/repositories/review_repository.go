package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/sahayuk/sahayuk/internal/models"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) ListByReviewee(ctx context.Context, revieweeID string) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) Exists(ctx context.Context, taskID, reviewerID, revieweeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("task_id = ? AND reviewer_id = ? AND reviewee_id = ?", taskID, reviewerID, revieweeID).
		Count(&count).Error
	return count > 0, err
}

// AverageRating returns the reviewee's mean rating and review count;
// zero values when unreviewed.
func (r *ReviewRepository) AverageRating(ctx context.Context, revieweeID string) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("coalesce(avg(rating), 0) as avg, count(*) as count").
		Where("reviewee_id = ?", revieweeID).
		Scan(&row).Error
	return row.Avg, row.Count, err
}
