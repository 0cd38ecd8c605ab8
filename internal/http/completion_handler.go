package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/sahayuk/sahayuk/internal/http/middlewares"
	request "github.com/sahayuk/sahayuk/internal/http/requests"
	"github.com/sahayuk/sahayuk/internal/http/validators"
)

func (h *Handler) SubmitCompletion(c echo.Context) error {
	var req request.SubmitCompletion
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSubmitCompletion(&req); err != nil {
		return err
	}

	completion, err := h.completionService.Submit(
		c.Request().Context(),
		req.TaskID,
		middleware.UserID(c),
		req.CompletionNote,
		req.CompletionFiles,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, completion)
}

// ReviewCompletion is the client's verdict on submitted work: approve
// closes the task, anything else sends it back for revision.
func (h *Handler) ReviewCompletion(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "completion id is required")
	}

	var req request.ReviewCompletion
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	if req.Approve {
		if err := h.completionService.Approve(ctx, id, userID, req.Rating, req.Feedback); err != nil {
			return httpError(err)
		}
	} else {
		if err := h.completionService.RequestRevision(ctx, id, userID, req.Feedback); err != nil {
			return httpError(err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListTaskCompletions(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	completions, err := h.completionService.ListForTask(c.Request().Context(), taskID, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, completions)
}

func (h *Handler) SubmitReview(c echo.Context) error {
	var req request.SubmitReview
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSubmitReview(&req); err != nil {
		return err
	}

	review, err := h.reviewService.Submit(
		c.Request().Context(),
		req.TaskID,
		middleware.UserID(c),
		req.RevieweeID,
		req.Rating,
		req.ReviewText,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, review)
}
