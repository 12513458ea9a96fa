package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"church-site-backend/internal/client"
	"church-site-backend/internal/dto"
	"church-site-backend/internal/model"
	"church-site-backend/internal/repository"
)

type ContentService interface {
	ListGallery(ctx context.Context, category string) ([]*model.GalleryItem, error)
	ListDevotions(ctx context.Context) ([]*model.Devotion, error)
	ListResources(ctx context.Context, resourceType string) ([]*model.Resource, error)

	CreateGalleryItem(ctx context.Context, req *dto.GalleryItemCreate) (*model.GalleryItem, error)
	CreateDevotion(ctx context.Context, req *dto.DevotionCreate) (*model.Devotion, error)
	CreateResource(ctx context.Context, req *dto.ResourceCreate) (*model.Resource, error)

	DeleteGalleryItem(ctx context.Context, id string) error
	DeleteDevotion(ctx context.Context, id string) error
	DeleteResource(ctx context.Context, id string) error

	UploadMedia(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}

type contentServiceImpl struct {
	contentRepo repository.ContentRepository
	objectStore client.ObjectStore
}

func NewContentService(contentRepo repository.ContentRepository, objectStore client.ObjectStore) ContentService {
	return &contentServiceImpl{
		contentRepo: contentRepo,
		objectStore: objectStore,
	}
}

func (s *contentServiceImpl) ListGallery(ctx context.Context, category string) ([]*model.GalleryItem, error) {
	return s.contentRepo.ListGalleryItems(ctx, category)
}

func (s *contentServiceImpl) ListDevotions(ctx context.Context) ([]*model.Devotion, error) {
	return s.contentRepo.ListDevotions(ctx)
}

func (s *contentServiceImpl) ListResources(ctx context.Context, resourceType string) ([]*model.Resource, error) {
	return s.contentRepo.ListResources(ctx, resourceType)
}

func (s *contentServiceImpl) CreateGalleryItem(ctx context.Context, req *dto.GalleryItemCreate) (*model.GalleryItem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, &ValidationError{Field: "image_url", Reason: "required"}
	}

	item := &model.GalleryItem{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}
	if err := s.contentRepo.CreateGalleryItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *contentServiceImpl) CreateDevotion(ctx context.Context, req *dto.DevotionCreate) (*model.Devotion, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, &ValidationError{Field: "content", Reason: "required"}
	}

	devotion := &model.Devotion{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Scripture: req.Scripture,
		Content:   req.Content,
		Author:    req.Author,
	}
	if err := s.contentRepo.CreateDevotion(ctx, devotion); err != nil {
		return nil, err
	}

	return devotion, nil
}

func (s *contentServiceImpl) CreateResource(ctx context.Context, req *dto.ResourceCreate) (*model.Resource, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}

	resourceType := model.ResourceType(req.Type)
	if resourceType != model.ResourceVideo && resourceType != model.ResourceAudio {
		return nil, &ValidationError{Field: "type", Reason: "must be video or audio"}
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, &ValidationError{Field: "url", Reason: "required"}
	}

	resource := &model.Resource{
		ID:       uuid.New().String(),
		Title:    req.Title,
		Type:     resourceType,
		URL:      req.URL,
		Category: req.Category,
	}
	if err := s.contentRepo.CreateResource(ctx, resource); err != nil {
		return nil, err
	}

	return resource, nil
}

func (s *contentServiceImpl) DeleteGalleryItem(ctx context.Context, id string) error {
	return s.contentRepo.DeleteGalleryItem(ctx, id)
}

func (s *contentServiceImpl) DeleteDevotion(ctx context.Context, id string) error {
	return s.contentRepo.DeleteDevotion(ctx, id)
}

func (s *contentServiceImpl) DeleteResource(ctx context.Context, id string) error {
	return s.contentRepo.DeleteResource(ctx, id)
}

func (s *contentServiceImpl) UploadMedia(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ValidationError{Field: "file", Reason: "empty upload"}
	}

	url, err := s.objectStore.Upload(ctx, folder, filename, contentType, data)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}

	return url, nil
}
