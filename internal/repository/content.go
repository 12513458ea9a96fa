package repository

import (
	"context"

	"gorm.io/gorm"

	"church-site-backend/internal/model"
)

// ContentRepository covers the simple CRUD entities: gallery items,
// devotions and resources. They share one repository because none of them
// has lifecycle rules beyond create/list/delete.
type ContentRepository interface {
	CreateGalleryItem(ctx context.Context, item *model.GalleryItem) error
	ListGalleryItems(ctx context.Context, category string) ([]*model.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error

	CreateDevotion(ctx context.Context, devotion *model.Devotion) error
	ListDevotions(ctx context.Context) ([]*model.Devotion, error)
	DeleteDevotion(ctx context.Context, id string) error

	CreateResource(ctx context.Context, resource *model.Resource) error
	ListResources(ctx context.Context, resourceType string) ([]*model.Resource, error)
	DeleteResource(ctx context.Context, id string) error
}

type contentRepoImpl struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepoImpl{
		db: db,
	}
}

func (r *contentRepoImpl) CreateGalleryItem(ctx context.Context, item *model.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepoImpl) ListGalleryItems(ctx context.Context, category string) ([]*model.GalleryItem, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var items []*model.GalleryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *contentRepoImpl) DeleteGalleryItem(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.GalleryItem{}, id)
}

func (r *contentRepoImpl) CreateDevotion(ctx context.Context, devotion *model.Devotion) error {
	return r.db.WithContext(ctx).Create(devotion).Error
}

func (r *contentRepoImpl) ListDevotions(ctx context.Context) ([]*model.Devotion, error) {
	var devotions []*model.Devotion
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&devotions).Error

	if err != nil {
		return nil, err
	}

	return devotions, nil
}

func (r *contentRepoImpl) DeleteDevotion(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.Devotion{}, id)
}

func (r *contentRepoImpl) CreateResource(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *contentRepoImpl) ListResources(ctx context.Context, resourceType string) ([]*model.Resource, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if resourceType != "" {
		query = query.Where("type = ?", resourceType)
	}

	var resources []*model.Resource
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *contentRepoImpl) DeleteResource(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.Resource{}, id)
}

func deleteByID(db *gorm.DB, entity interface{}, id string) error {
	result := db.Where("id = ?", id).Delete(entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
