package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	request "github.com/sahayuk/sahayuk/internal/http/requests"
	"github.com/sahayuk/sahayuk/internal/http/validators"
)

func (h *Handler) Signup(c echo.Context) error {
	var req request.Signup
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSignup(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Signin(c echo.Context) error {
	var req request.Signin
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSignin(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}
