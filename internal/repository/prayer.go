package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"church-site-backend/internal/model"
)

type PrayerRepository interface {
	Create(ctx context.Context, request *model.PrayerRequest) error
	List(ctx context.Context) ([]*model.PrayerRequest, error)
	SetStatus(ctx context.Context, id string, status model.PrayerStatus) error
	Delete(ctx context.Context, id string) error
}

type prayerRepoImpl struct {
	db *gorm.DB
}

func NewPrayerRepository(db *gorm.DB) PrayerRepository {
	return &prayerRepoImpl{
		db: db,
	}
}

func (r *prayerRepoImpl) Create(ctx context.Context, request *model.PrayerRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *prayerRepoImpl) List(ctx context.Context) ([]*model.PrayerRequest, error) {
	var requests []*model.PrayerRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&requests).Error

	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *prayerRepoImpl) SetStatus(ctx context.Context, id string, status model.PrayerStatus) error {
	result := r.db.WithContext(ctx).Model(&model.PrayerRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *prayerRepoImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.PrayerRequest{}, id)
}
