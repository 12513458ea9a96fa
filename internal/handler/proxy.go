package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"church-site-backend/internal/client"
)

// ProxyHandler relays Pesapal calls for browser clients whose direct calls
// are blocked by CORS. Upstream status codes and bodies pass through
// verbatim; the server-held credentials are attached on the way out.
type ProxyHandler struct {
	pesapalClient client.PesapalClient
}

func NewProxyHandler(pesapalClient client.PesapalClient) *ProxyHandler {
	return &ProxyHandler{
		pesapalClient: pesapalClient,
	}
}

func (h *ProxyHandler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":   "Pesapal proxy is working",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ProxyHandler) Auth(c echo.Context) error {
	ctx := c.Request().Context()

	status, body, err := h.pesapalClient.RelayAuth(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.Blob(status, echo.MIMEApplicationJSON, body)
}

func (h *ProxyHandler) SubmitOrder(c echo.Context) error {
	ctx := c.Request().Context()

	reqBody, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
	}

	status, body, err := h.pesapalClient.RelaySubmitOrder(ctx, reqBody)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.Blob(status, echo.MIMEApplicationJSON, body)
}

func (h *ProxyHandler) TransactionStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderTrackingID := c.QueryParam("orderTrackingId")
	if orderTrackingID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderTrackingId is required")
	}

	status, body, err := h.pesapalClient.RelayTransactionStatus(ctx, orderTrackingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.Blob(status, echo.MIMEApplicationJSON, body)
}

// NotFound echoes the attempted path and method so misrouted callers can see
// what they actually hit.
func (h *ProxyHandler) NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]interface{}{
		"error": "Endpoint not found",
		"debug": map[string]string{
			"path":   c.Request().URL.Path,
			"method": c.Request().Method,
		},
	})
}
