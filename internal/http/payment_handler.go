package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/sahayuk/sahayuk/internal/http/middlewares"
	request "github.com/sahayuk/sahayuk/internal/http/requests"
	"github.com/sahayuk/sahayuk/internal/http/validators"
	"github.com/sahayuk/sahayuk/internal/payments"
)

func (h *Handler) CreatePaymentOrder(c echo.Context) error {
	var req request.CreateOrder
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateOrder(&req); err != nil {
		return err
	}

	order, err := h.subscriptionService.CreateOrder(c.Request().Context(), middleware.UserID(c), req.Amount)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

// PaymentWebhook takes the gateway's raw body so the signature check runs
// over exactly the bytes that were signed.
func (h *Handler) PaymentWebhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	signature := c.Request().Header.Get(payments.SignatureHeader)
	if err := h.subscriptionService.HandleWebhook(c.Request().Context(), body, signature); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) SubscriptionStatus(c echo.Context) error {
	status, err := h.subscriptionService.Status(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, status)
}
