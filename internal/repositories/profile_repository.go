package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	model "github.com/sahayuk/sahayuk/internal/models"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, userID string) (*model.UserProfile, error) {
	now := time.Now().UTC()
	profile := &model.UserProfile{
		UserID:           userID,
		SubscriptionType: constants.SubscriptionFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *ProfileRepository) SetSubscription(
	ctx context.Context,
	userID string,
	subType constants.SubscriptionType,
) error {
	return r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"subscription_type": subType,
			"updated_at":        time.Now().UTC(),
		}).Error
}

// IncrementTasksPosted bumps the display counter after a successful post.
// The quota itself is enforced by the atomic month counter, this column is
// informational.
func (r *ProfileRepository) IncrementTasksPosted(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"tasks_posted_this_month": gorm.Expr("tasks_posted_this_month + 1"),
			"updated_at":              time.Now().UTC(),
		}).Error
}

// ResetMonthlyCounts zeroes every profile's posted-this-month counter,
// called by the calendar-rollover job.
func (r *ProfileRepository) ResetMonthlyCounts(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("tasks_posted_this_month > 0").
		Updates(map[string]interface{}{
			"tasks_posted_this_month": 0,
			"updated_at":              time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
