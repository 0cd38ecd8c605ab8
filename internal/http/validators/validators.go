package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	request "github.com/sahayuk/sahayuk/internal/http/requests"
)

func ValidateSignup(r *request.Signup) error {
	if !strings.Contains(r.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}
	if len(r.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	return nil
}

func ValidateSignin(r *request.Signin) error {
	if r.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}

func ValidatePostTask(r *request.PostTask) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if r.BudgetMin != nil && *r.BudgetMin < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "budget_min must not be negative")
	}
	if r.BudgetMin != nil && r.BudgetMax != nil && *r.BudgetMax < *r.BudgetMin {
		return echo.NewHTTPError(http.StatusBadRequest, "budget_max must not be below budget_min")
	}
	return nil
}

func ValidateSubmitBid(r *request.SubmitBid) error {
	if r.TaskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task_id is required")
	}
	if r.BidAmount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "bid_amount must be greater than 0")
	}
	return nil
}

func ValidateSendMessage(r *request.SendMessage) error {
	if r.TaskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task_id is required")
	}
	if r.ReceiverID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "receiver_id is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	return nil
}

func ValidateSubmitCompletion(r *request.SubmitCompletion) error {
	if r.TaskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task_id is required")
	}
	if strings.TrimSpace(r.CompletionNote) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "completion_note is required")
	}
	return nil
}

func ValidateSubmitReview(r *request.SubmitReview) error {
	if r.TaskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task_id is required")
	}
	if r.RevieweeID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reviewee_id is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}
	return nil
}

func ValidateCreateOrder(r *request.CreateOrder) error {
	if r.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be greater than 0")
	}
	return nil
}
