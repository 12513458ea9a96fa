package repository

import (
	"context"

	"gorm.io/gorm"

	"church-site-backend/internal/model"
)

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	Create(ctx context.Context, admin *model.Admin) error
}

type adminRepoImpl struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepoImpl{
		db: db,
	}
}

func (r *adminRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&admin).Error

	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepoImpl) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}
