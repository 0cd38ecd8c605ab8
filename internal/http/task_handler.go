package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sahayuk/sahayuk/internal/constants"
	middleware "github.com/sahayuk/sahayuk/internal/http/middlewares"
	request "github.com/sahayuk/sahayuk/internal/http/requests"
	"github.com/sahayuk/sahayuk/internal/http/validators"
	"github.com/sahayuk/sahayuk/internal/services"
)

func (h *Handler) PostTask(c echo.Context) error {
	var req request.PostTask
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidatePostTask(&req); err != nil {
		return err
	}

	task, err := h.taskService.Post(c.Request().Context(), middleware.UserID(c), services.PostTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		BudgetMin:       req.BudgetMin,
		BudgetMax:       req.BudgetMax,
		Urgency:         constants.Urgency(req.Urgency),
		LocationAddress: req.LocationAddress,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// BrowseTasks lists the open tasks the caller can work on, filtered and
// sorted by proximity. Coordinates come in as query params so the listing
// stays cacheable per location.
func (h *Handler) BrowseTasks(c echo.Context) error {
	filter := services.CatalogFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Urgency:  constants.Urgency(c.QueryParam("urgency")),
	}

	if lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64); err == nil {
			filter.Lat, filter.Lng = &lat, &lng
		}
	}

	tasks, err := h.taskService.Browse(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.taskService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListMyTasks(c echo.Context) error {
	tasks, err := h.taskService.ListByClient(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListMyWork(c echo.Context) error {
	tasks, err := h.taskService.ListByWorker(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	if err := h.taskService.Delete(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DashboardStats(c echo.Context) error {
	stats, err := h.taskService.Stats(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
