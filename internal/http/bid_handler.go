package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/sahayuk/sahayuk/internal/http/middlewares"
	request "github.com/sahayuk/sahayuk/internal/http/requests"
	"github.com/sahayuk/sahayuk/internal/http/validators"
)

func (h *Handler) SubmitBid(c echo.Context) error {
	var req request.SubmitBid
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSubmitBid(&req); err != nil {
		return err
	}

	bid, err := h.bidService.Submit(
		c.Request().Context(),
		req.TaskID,
		middleware.UserID(c),
		req.BidAmount,
		req.Message,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, bid)
}

func (h *Handler) AcceptBid(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bid id is required")
	}

	bid, err := h.bidService.Accept(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, bid)
}

func (h *Handler) RejectBid(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bid id is required")
	}

	if err := h.bidService.Reject(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListTaskBids(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	bids, err := h.bidService.ListForTask(c.Request().Context(), taskID, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, bids)
}

func (h *Handler) ListMyBids(c echo.Context) error {
	bids, err := h.bidService.ListForWorker(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bids)
}
