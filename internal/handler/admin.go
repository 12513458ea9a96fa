package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"church-site-backend/internal/dto"
	"church-site-backend/internal/service"
)

type AdminHandler struct {
	authService service.AuthService
}

func NewAdminHandler(authService service.AuthService) *AdminHandler {
	return &AdminHandler{
		authService: authService,
	}
}

func (h *AdminHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
