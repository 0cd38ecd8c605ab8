package http

import (
	"github.com/labstack/echo/v4"

	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	"github.com/sahayuk/sahayuk/internal/services"
)

type Handler struct {
	authService         *services.AuthService
	profileService      *services.ProfileService
	taskService         *services.TaskService
	bidService          *services.BidService
	chatService         *services.ChatService
	notificationService *services.NotificationService
	reviewService       *services.ReviewService
	completionService   *services.CompletionService
	subscriptionService *services.SubscriptionService
}

func NewHandler(
	authService *services.AuthService,
	profileService *services.ProfileService,
	taskService *services.TaskService,
	bidService *services.BidService,
	chatService *services.ChatService,
	notificationService *services.NotificationService,
	reviewService *services.ReviewService,
	completionService *services.CompletionService,
	subscriptionService *services.SubscriptionService,
) *Handler {
	return &Handler{
		authService:         authService,
		profileService:      profileService,
		taskService:         taskService,
		bidService:          bidService,
		chatService:         chatService,
		notificationService: notificationService,
		reviewService:       reviewService,
		completionService:   completionService,
		subscriptionService: subscriptionService,
	}
}

// httpError translates service errors into echo responses. Unknown errors
// come out as a plain 500 without leaking internals.
func httpError(err error) error {
	code := apperrors.StatusCode(err)
	if code == 500 {
		return echo.NewHTTPError(code, "internal server error")
	}
	return echo.NewHTTPError(code, err.Error())
}
