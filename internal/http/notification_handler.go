package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	middleware "github.com/sahayuk/sahayuk/internal/http/middlewares"
)

func (h *Handler) ListNotifications(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	notifications, err := h.notificationService.List(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return httpError(err)
	}

	unread, err := h.notificationService.UnreadCount(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "notification id is required")
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MarkAllNotificationsRead(c echo.Context) error {
	if err := h.notificationService.MarkAllRead(c.Request().Context(), middleware.UserID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
