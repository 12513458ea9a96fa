package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"church-site-backend/internal/service"
)

// AdminAuth guards the admin dashboard routes with a bearer JWT issued by
// the auth service at login.
func AdminAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := authService.ValidateToken(tokenStr)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("admin_id", claims["sub"])
			c.Set("admin_role", claims["role"])
			return next(c)
		}
	}
}
