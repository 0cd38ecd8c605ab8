package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sahayuk/sahayuk/internal/auth"
	middleware "github.com/sahayuk/sahayuk/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, tokens *auth.TokenIssuer, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/signin", h.Signin)

	// The gateway authenticates with its signature header, not a session.
	e.POST("/payments/webhook", h.PaymentWebhook)

	api := e.Group("", middleware.RequireAuth(tokens))

	api.GET("/profile", h.GetMyProfile)
	api.PUT("/profile", h.UpdateMyProfile)
	api.GET("/users/:id/reviews", h.GetUserReviews)

	api.POST("/tasks", h.PostTask)
	api.GET("/tasks", h.BrowseTasks)
	api.GET("/tasks/mine", h.ListMyTasks)
	api.GET("/tasks/working", h.ListMyWork)
	api.GET("/tasks/:id", h.GetTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.GET("/tasks/:id/bids", h.ListTaskBids)
	api.GET("/tasks/:id/messages", h.TaskMessages)
	api.POST("/tasks/:id/messages/read", h.MarkMessagesRead)
	api.GET("/tasks/:id/completions", h.ListTaskCompletions)
	api.GET("/dashboard/stats", h.DashboardStats)

	api.POST("/bids", h.SubmitBid)
	api.GET("/bids/mine", h.ListMyBids)
	api.POST("/bids/:id/accept", h.AcceptBid)
	api.POST("/bids/:id/reject", h.RejectBid)

	api.POST("/messages", h.SendMessage)
	api.GET("/messages/unread", h.UnreadMessageCounts)
	api.GET("/messages/stream", h.StreamUnread)

	api.GET("/notifications", h.ListNotifications)
	api.POST("/notifications/read-all", h.MarkAllNotificationsRead)
	api.POST("/notifications/:id/read", h.MarkNotificationRead)

	api.POST("/completions", h.SubmitCompletion)
	api.POST("/completions/:id/review", h.ReviewCompletion)

	api.POST("/reviews", h.SubmitReview)

	api.POST("/payments/order", h.CreatePaymentOrder)
	api.GET("/subscription", h.SubscriptionStatus)
}
