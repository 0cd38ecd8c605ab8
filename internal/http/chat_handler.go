package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/sahayuk/sahayuk/internal/http/middlewares"
	request "github.com/sahayuk/sahayuk/internal/http/requests"
	"github.com/sahayuk/sahayuk/internal/http/validators"
)

func (h *Handler) SendMessage(c echo.Context) error {
	var req request.SendMessage
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSendMessage(&req); err != nil {
		return err
	}

	msg, err := h.chatService.Send(
		c.Request().Context(),
		req.TaskID,
		middleware.UserID(c),
		req.ReceiverID,
		req.Message,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, msg)
}

// TaskMessages returns the conversation and marks the caller's incoming
// messages read in the same request.
func (h *Handler) TaskMessages(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	msgs, err := h.chatService.Messages(c.Request().Context(), taskID, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, msgs)
}

// MarkMessagesRead flips the caller's incoming messages on the task to
// read without returning the conversation.
func (h *Handler) MarkMessagesRead(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	if err := h.chatService.MarkRead(c.Request().Context(), taskID, middleware.UserID(c)); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UnreadMessageCounts(c echo.Context) error {
	counts, err := h.chatService.UnreadCounts(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, counts)
}

// StreamUnread pushes unread-count changes over server-sent events so
// clients do not have to poll per conversation.
func (h *Handler) StreamUnread(c echo.Context) error {
	updates, cancel := h.chatService.SubscribeUnread(middleware.UserID(c))
	defer cancel()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case update := <-updates:
			payload, err := json.Marshal(update)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
