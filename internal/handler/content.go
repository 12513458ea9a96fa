package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"church-site-backend/internal/dto"
	"church-site-backend/internal/service"
)

type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

func (h *ContentHandler) ListGallery(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.contentService.ListGallery(ctx, c.QueryParam("category"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) ListDevotions(c echo.Context) error {
	ctx := c.Request().Context()

	devotions, err := h.contentService.ListDevotions(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, devotions)
}

func (h *ContentHandler) ListResources(c echo.Context) error {
	ctx := c.Request().Context()

	resources, err := h.contentService.ListResources(ctx, c.QueryParam("type"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resources)
}

func (h *ContentHandler) CreateGalleryItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.GalleryItemCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	item, err := h.contentService.CreateGalleryItem(ctx, &req)
	if err != nil {
		return badRequestOnValidation(err)
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler) CreateDevotion(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.DevotionCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	devotion, err := h.contentService.CreateDevotion(ctx, &req)
	if err != nil {
		return badRequestOnValidation(err)
	}

	return c.JSON(http.StatusCreated, devotion)
}

func (h *ContentHandler) CreateResource(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ResourceCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resource, err := h.contentService.CreateResource(ctx, &req)
	if err != nil {
		return badRequestOnValidation(err)
	}

	return c.JSON(http.StatusCreated, resource)
}

func (h *ContentHandler) DeleteGalleryItem(c echo.Context) error {
	return deleteEntity(c, h.contentService.DeleteGalleryItem)
}

func (h *ContentHandler) DeleteDevotion(c echo.Context) error {
	return deleteEntity(c, h.contentService.DeleteDevotion)
}

func (h *ContentHandler) DeleteResource(c echo.Context) error {
	return deleteEntity(c, h.contentService.DeleteResource)
}

// UploadMedia accepts a multipart file and stores it in the object store.
// The folder query param picks the bucket folder (gallery or resources).
func (h *ContentHandler) UploadMedia(c echo.Context) error {
	ctx := c.Request().Context()

	folder := c.QueryParam("folder")
	if folder != "gallery" && folder != "resources" {
		return echo.NewHTTPError(http.StatusBadRequest, "folder must be gallery or resources")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	url, err := h.contentService.UploadMedia(ctx, folder, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return badRequestOnValidation(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func deleteEntity(c echo.Context, deleteFn func(ctx context.Context, id string) error) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := deleteFn(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func badRequestOnValidation(err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return err
}
