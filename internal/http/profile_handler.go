package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/sahayuk/sahayuk/internal/http/middlewares"
	request "github.com/sahayuk/sahayuk/internal/http/requests"
	"github.com/sahayuk/sahayuk/internal/services"
)

func (h *Handler) GetMyProfile(c echo.Context) error {
	profile, err := h.profileService.Get(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateMyProfile(c echo.Context) error {
	var req request.UpdateProfile
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	profile, err := h.profileService.Update(c.Request().Context(), middleware.UserID(c), services.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Bio:          req.Bio,
		Skills:       req.Skills,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetUserReviews(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	reviews, err := h.reviewService.ForUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, reviews)
}
