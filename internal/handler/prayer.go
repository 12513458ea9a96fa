package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"church-site-backend/internal/dto"
	"church-site-backend/internal/service"
)

type PrayerHandler struct {
	prayerService service.PrayerService
}

func NewPrayerHandler(prayerService service.PrayerService) *PrayerHandler {
	return &PrayerHandler{
		prayerService: prayerService,
	}
}

func (h *PrayerHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PrayerRequestCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	request, err := h.prayerService.Submit(ctx, &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
		}
		return err
	}

	return c.JSON(http.StatusCreated, request)
}

func (h *PrayerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	requests, err := h.prayerService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, requests)
}

func (h *PrayerHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req dto.PrayerStatusUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.prayerService.UpdateStatus(ctx, id, req.Status); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prayer request not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}

func (h *PrayerHandler) Delete(c echo.Context) error {
	return deleteEntity(c, h.prayerService.Delete)
}
