package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	"github.com/sahayuk/sahayuk/internal/payments"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

const proMonthlyPlan = "pro_monthly"

// SubscriptionService fronts the payment gateway: it creates orders for
// the pro upgrade and reconciles gateway webhooks into subscription state.
type SubscriptionService struct {
	gateway        *payments.Client
	webhookSecret  string
	userRepo       *repository.UserRepository
	profileRepo    *repository.ProfileRepository
	subscriberRepo *repository.SubscriberRepository
}

func NewSubscriptionService(
	gateway *payments.Client,
	webhookSecret string,
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	subscriberRepo *repository.SubscriberRepository,
) *SubscriptionService {
	return &SubscriptionService{
		gateway:        gateway,
		webhookSecret:  webhookSecret,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		subscriberRepo: subscriberRepo,
	}
}

// CreateOrder asks the gateway for an order the client can pay against.
// The order notes carry the user's identity so the webhook can route the
// payment back without trusting anything client-side.
func (s *SubscriptionService) CreateOrder(ctx context.Context, userID string, amount int) (*payments.Order, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.gateway.CreateOrder(ctx, payments.OrderRequest{
		Amount:   amount,
		Currency: "INR",
		Receipt:  fmt.Sprintf("receipt_%s_%d", userID, time.Now().UnixMilli()),
		Notes: map[string]string{
			"user_id":    user.ID,
			"user_email": user.Email,
			"plan":       proMonthlyPlan,
		},
	})
}

// HandleWebhook verifies and applies a gateway event. Paid events upgrade
// the user to pro, refunds downgrade; anything else is acknowledged so
// the gateway stops retrying.
func (s *SubscriptionService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if s.webhookSecret != "" {
		if !payments.VerifySignature(body, signature, s.webhookSecret) {
			return apperrors.ErrInvalidSignature
		}
	} else {
		log.Println("warning: webhook secret not configured, accepting event unverified")
	}

	event, err := payments.ParseEvent(body)
	if err != nil {
		return &apperrors.Exception{Message: "malformed webhook payload", StatusCode: 400}
	}

	switch event.Event {
	case payments.EventPaymentCaptured, payments.EventOrderPaid, payments.EventPaymentLinkPaid:
		return s.activate(ctx, event)
	case payments.EventRefundProcessed:
		return s.deactivate(ctx, event)
	default:
		log.Printf("webhook: ignoring event %q", event.Event)
		return nil
	}
}

func (s *SubscriptionService) activate(ctx context.Context, event *payments.Event) error {
	notes := event.Notes()
	userID := notes["user_id"]
	if userID == "" {
		log.Printf("webhook: %s event without user_id note, skipping", event.Event)
		return nil
	}

	tier := string(constants.SubscriptionPro)
	if err := s.subscriberRepo.Upsert(ctx, userID, notes["user_email"], true, &tier); err != nil {
		return err
	}

	return s.profileRepo.SetSubscription(ctx, userID, constants.SubscriptionPro)
}

func (s *SubscriptionService) deactivate(ctx context.Context, event *payments.Event) error {
	notes := event.Notes()
	userID := notes["user_id"]
	if userID == "" {
		log.Printf("webhook: refund event without user_id note, skipping")
		return nil
	}

	if err := s.subscriberRepo.Upsert(ctx, userID, notes["user_email"], false, nil); err != nil {
		return err
	}

	return s.profileRepo.SetSubscription(ctx, userID, constants.SubscriptionFree)
}

type SubscriptionStatus struct {
	Active bool                       `json:"active"`
	Tier   constants.SubscriptionType `json:"tier"`
}

// Status reports the user's current tier from the profile row, which the
// webhook keeps in sync with the gateway.
func (s *SubscriptionService) Status(ctx context.Context, userID string) (*SubscriptionStatus, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}

	return &SubscriptionStatus{
		Active: profile.SubscriptionType == constants.SubscriptionPro,
		Tier:   profile.SubscriptionType,
	}, nil
}
