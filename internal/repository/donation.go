package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"church-site-backend/internal/model"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	FindByID(ctx context.Context, id string) (*model.Donation, error)
	List(ctx context.Context) ([]*model.Donation, error)
	SetTrackingID(ctx context.Context, id, trackingID string) error
	// Finalize moves a pending donation to a terminal status. It is a no-op
	// when the record is already terminal, which is what makes the payment
	// callback idempotent.
	Finalize(ctx context.Context, id string, status model.DonationStatus, trackingID string) error
	FindStalePending(ctx context.Context, olderThan time.Time) ([]*model.Donation, error)
}

type donationRepoImpl struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepoImpl{
		db: db,
	}
}

func (r *donationRepoImpl) Create(ctx context.Context, donation *model.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepoImpl) FindByID(ctx context.Context, id string) (*model.Donation, error) {
	var donation model.Donation
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&donation).Error

	if err != nil {
		return nil, err
	}

	return &donation, nil
}

func (r *donationRepoImpl) List(ctx context.Context) ([]*model.Donation, error) {
	var donations []*model.Donation
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&donations).Error

	if err != nil {
		return nil, err
	}

	return donations, nil
}

func (r *donationRepoImpl) SetTrackingID(ctx context.Context, id, trackingID string) error {
	return r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"tracking_id": trackingID,
			"updated_at":  time.Now(),
		}).Error
}

func (r *donationRepoImpl) Finalize(ctx context.Context, id string, status model.DonationStatus, trackingID string) error {
	return r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ? AND status = ?", id, model.DonationPending).
		Updates(map[string]interface{}{
			"status":      status,
			"tracking_id": trackingID,
			"updated_at":  time.Now(),
		}).Error
}

func (r *donationRepoImpl) FindStalePending(ctx context.Context, olderThan time.Time) ([]*model.Donation, error) {
	var donations []*model.Donation
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.DonationPending, olderThan).
		Find(&donations).Error

	if err != nil {
		return nil, err
	}

	return donations, nil
}
