package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"church-site-backend/internal/dto"
	"church-site-backend/internal/service"
)

type DonationHandler struct {
	donationService service.DonationService
}

func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

func (h *DonationHandler) Donate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.DonateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.donationService.Donate(ctx, &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, "donation could not be processed, please try again")
	}

	return c.JSON(http.StatusOK, resp)
}

// Callback is where Pesapal redirects the donor's browser after payment.
func (h *DonationHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	orderTrackingID := c.QueryParam("OrderTrackingId")
	merchantReference := c.QueryParam("OrderMerchantReference")

	result := h.donationService.HandleCallback(ctx, orderTrackingID, merchantReference)

	return c.JSON(http.StatusOK, result)
}

func (h *DonationHandler) ListDonations(c echo.Context) error {
	ctx := c.Request().Context()

	donations, err := h.donationService.ListDonations(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, donations)
}
