package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"church-site-backend/internal/config"
	"church-site-backend/internal/dto"
	"church-site-backend/internal/model"
)

type MockDonationService struct{ mock.Mock }

func (m *MockDonationService) Donate(ctx context.Context, req *dto.DonateRequest) (*dto.DonateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DonateResponse), args.Error(1)
}
func (m *MockDonationService) HandleCallback(ctx context.Context, orderTrackingID, merchantReference string) *dto.CallbackResult {
	args := m.Called(ctx, orderTrackingID, merchantReference)
	return args.Get(0).(*dto.CallbackResult)
}
func (m *MockDonationService) ListDonations(ctx context.Context) ([]*model.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Donation), args.Error(1)
}
func (m *MockDonationService) FinalizeFromUpstream(ctx context.Context, donation *model.Donation) (model.DonationStatus, error) {
	args := m.Called(ctx, donation)
	return args.Get(0).(model.DonationStatus), args.Error(1)
}

type MockDonationRepository struct{ mock.Mock }

func (m *MockDonationRepository) Create(ctx context.Context, donation *model.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}
func (m *MockDonationRepository) FindByID(ctx context.Context, id string) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}
func (m *MockDonationRepository) List(ctx context.Context) ([]*model.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Donation), args.Error(1)
}
func (m *MockDonationRepository) SetTrackingID(ctx context.Context, id, trackingID string) error {
	args := m.Called(ctx, id, trackingID)
	return args.Error(0)
}
func (m *MockDonationRepository) Finalize(ctx context.Context, id string, status model.DonationStatus, trackingID string) error {
	args := m.Called(ctx, id, status, trackingID)
	return args.Error(0)
}
func (m *MockDonationRepository) FindStalePending(ctx context.Context, olderThan time.Time) ([]*model.Donation, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Donation), args.Error(1)
}

func TestSweepReconcilesOnlySubmittedDonations(t *testing.T) {
	mockService := new(MockDonationService)
	mockRepo := new(MockDonationRepository)
	ctx := context.Background()

	submitted := &model.Donation{ID: "don-1", Status: model.DonationPending, TrackingID: "T1"}
	neverSubmitted := &model.Donation{ID: "don-2", Status: model.DonationPending}

	mockRepo.On("FindStalePending", ctx, mock.AnythingOfType("time.Time")).
		Return([]*model.Donation{submitted, neverSubmitted}, nil).Once()
	mockService.On("FinalizeFromUpstream", ctx, submitted).
		Return(model.DonationCompleted, nil).Once()

	r := NewReconciler(mockService, mockRepo, config.Sweeper{IntervalMin: 10, PendingAfterMin: 30})
	r.Sweep(ctx)

	mockRepo.AssertExpectations(t)
	mockService.AssertExpectations(t)
	// a donation with no tracking id has nothing upstream to ask about
	mockService.AssertNotCalled(t, "FinalizeFromUpstream", ctx, neverSubmitted)
}

func TestSweepNoStaleDonations(t *testing.T) {
	mockService := new(MockDonationService)
	mockRepo := new(MockDonationRepository)
	ctx := context.Background()

	mockRepo.On("FindStalePending", ctx, mock.AnythingOfType("time.Time")).
		Return([]*model.Donation{}, nil).Once()

	r := NewReconciler(mockService, mockRepo, config.Sweeper{IntervalMin: 10, PendingAfterMin: 30})
	r.Sweep(ctx)

	mockService.AssertNotCalled(t, "FinalizeFromUpstream", mock.Anything, mock.Anything)
}
