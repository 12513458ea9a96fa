package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"church-site-backend/internal/dto"
	"church-site-backend/internal/model"
	"church-site-backend/internal/repository"
)

type PrayerService interface {
	Submit(ctx context.Context, req *dto.PrayerRequestCreate) (*model.PrayerRequest, error)
	List(ctx context.Context) ([]*model.PrayerRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type prayerServiceImpl struct {
	prayerRepo repository.PrayerRepository
	notifier   Notifier
}

func NewPrayerService(prayerRepo repository.PrayerRepository, notifier Notifier) PrayerService {
	return &prayerServiceImpl{
		prayerRepo: prayerRepo,
		notifier:   notifier,
	}
}

func (s *prayerServiceImpl) Submit(ctx context.Context, req *dto.PrayerRequestCreate) (*model.PrayerRequest, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}
	if strings.TrimSpace(req.Request) == "" {
		return nil, &ValidationError{Field: "request", Reason: "required"}
	}

	request := &model.PrayerRequest{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Request:     req.Request,
		IsAnonymous: req.IsAnonymous,
		Status:      model.PrayerPending,
	}

	if err := s.prayerRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notifier.PrayerRequestReceived(ctx, request)

	return request, nil
}

func (s *prayerServiceImpl) List(ctx context.Context) ([]*model.PrayerRequest, error) {
	return s.prayerRepo.List(ctx)
}

// UpdateStatus toggles the two-state flag; an admin can mark a request
// prayed and move it back to pending.
func (s *prayerServiceImpl) UpdateStatus(ctx context.Context, id, status string) error {
	prayerStatus := model.PrayerStatus(status)
	if prayerStatus != model.PrayerPending && prayerStatus != model.PrayerPrayed {
		return &ValidationError{Field: "status", Reason: "must be pending or prayed"}
	}

	return s.prayerRepo.SetStatus(ctx, id, prayerStatus)
}

func (s *prayerServiceImpl) Delete(ctx context.Context, id string) error {
	return s.prayerRepo.Delete(ctx, id)
}
