package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	model "github.com/sahayuk/sahayuk/internal/models"
)

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) FindByUserID(ctx context.Context, userID string) (*model.Subscriber, error) {
	var sub model.Subscriber
	err := r.db.WithContext(ctx).First(&sub, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert records the webhook-reconciled subscription state for the user.
func (r *SubscriberRepository) Upsert(
	ctx context.Context,
	userID, email string,
	subscribed bool,
	tier *string,
) error {
	now := time.Now().UTC()

	existing, err := r.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub := &model.Subscriber{
			UserID:           userID,
			Email:            email,
			Subscribed:       subscribed,
			SubscriptionTier: tier,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return r.db.WithContext(ctx).Create(sub).Error
	}
	if err != nil {
		return err
	}

	existing.Subscribed = subscribed
	existing.SubscriptionTier = tier
	if email != "" {
		existing.Email = email
	}
	existing.UpdatedAt = now

	return r.db.WithContext(ctx).Save(existing).Error
}
