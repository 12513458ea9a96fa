package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"church-site-backend/internal/config"
	"church-site-backend/internal/dto"
	"church-site-backend/internal/model"
)

// --- Mocks for Dependencies ---

type MockPesapalClient struct{ mock.Mock }

func (m *MockPesapalClient) SubmitOrder(ctx context.Context, order *model.SubmitOrderRequest) (*model.SubmitOrderResponse, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmitOrderResponse), args.Error(1)
}
func (m *MockPesapalClient) GetTransactionStatus(ctx context.Context, orderTrackingID string) (*model.TransactionStatus, error) {
	args := m.Called(ctx, orderTrackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionStatus), args.Error(1)
}
func (m *MockPesapalClient) RelayAuth(ctx context.Context) (int, []byte, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Get(1).([]byte), args.Error(2)
}
func (m *MockPesapalClient) RelaySubmitOrder(ctx context.Context, body []byte) (int, []byte, error) {
	args := m.Called(ctx, body)
	return args.Int(0), args.Get(1).([]byte), args.Error(2)
}
func (m *MockPesapalClient) RelayTransactionStatus(ctx context.Context, orderTrackingID string) (int, []byte, error) {
	args := m.Called(ctx, orderTrackingID)
	return args.Int(0), args.Get(1).([]byte), args.Error(2)
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

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) DonationReceipt(ctx context.Context, donation *model.Donation) {
	m.Called(ctx, donation)
}
func (m *MockNotifier) PrayerRequestReceived(ctx context.Context, request *model.PrayerRequest) {
	m.Called(ctx, request)
}

func newDonationService(pesapal *MockPesapalClient, repo *MockDonationRepository, notifier *MockNotifier) DonationService {
	return NewDonationService(pesapal, repo, notifier,
		config.Donation{
			Currency:    "UGX",
			CountryCode: "UG",
			MinAmount:   1000,
			Description: "Donation to River of Life Ministries",
		},
		config.Pesapal{
			CallbackURL: "https://church.example/payment/callback",
			IPNID:       "ipn-1",
		},
	)
}

// --- Tests ---

func TestDonateRejectsInvalidInputBeforeAnyCall(t *testing.T) {
	tests := []struct {
		name string
		req  dto.DonateRequest
	}{
		{name: "amount below minimum", req: dto.DonateRequest{DonorName: "Jane Doe", Email: "a@b.com", Amount: 500}},
		{name: "missing name", req: dto.DonateRequest{Email: "a@b.com", Amount: 50000}},
		{name: "missing email", req: dto.DonateRequest{DonorName: "Jane Doe", Amount: 50000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockPesapalClient)
			mockRepo := new(MockDonationRepository)
			svc := newDonationService(mockClient, mockRepo, new(MockNotifier))

			_, err := svc.Donate(context.Background(), &tt.req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			// nothing persisted, nothing sent over the network
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			mockClient.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestDonateCreatesPendingRecordBeforeOrderCall(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	svc := newDonationService(mockClient, mockRepo, new(MockNotifier))
	ctx := context.Background()

	var createdID string
	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Donation")).
		Run(func(args mock.Arguments) {
			donation := args.Get(1).(*model.Donation)
			assert.Equal(t, model.DonationPending, donation.Status)
			assert.Equal(t, int64(50000), donation.Amount)
			assert.Equal(t, "UGX", donation.Currency)
			createdID = donation.ID
		}).Return(nil).Once()

	mockClient.On("SubmitOrder", ctx, mock.AnythingOfType("*model.SubmitOrderRequest")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*model.SubmitOrderRequest)
			// the record exists before the remote call, and its id is the
			// merchant reference
			require.NotEmpty(t, createdID)
			assert.Equal(t, createdID, order.ID)
			assert.Equal(t, "UGX", order.Currency)
			assert.Equal(t, "https://church.example/payment/callback", order.CallbackURL)
			assert.Equal(t, "ipn-1", order.NotificationID)
			assert.Equal(t, "Jane", order.BillingAddress.FirstName)
			assert.Equal(t, "Doe", order.BillingAddress.LastName)
		}).
		Return(&model.SubmitOrderResponse{
			OrderTrackingID:   "T1",
			MerchantReference: "don-1",
			RedirectURL:       "https://pay.pesapal.com/iframe/T1",
		}, nil).Once()

	mockRepo.On("SetTrackingID", ctx, mock.AnythingOfType("string"), "T1").Return(nil).Once()

	resp, err := svc.Donate(ctx, &dto.DonateRequest{
		DonorName: "Jane Doe",
		Email:     "a@b.com",
		Amount:    50000,
	})

	require.NoError(t, err)
	assert.Equal(t, createdID, resp.DonationID)
	assert.Equal(t, "T1", resp.OrderTrackingID)
	assert.Equal(t, "https://pay.pesapal.com/iframe/T1", resp.RedirectURL)
	mockRepo.AssertExpectations(t)
	mockClient.AssertExpectations(t)
}

func TestDonateMarksRecordFailedOnGatewayError(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	svc := newDonationService(mockClient, mockRepo, new(MockNotifier))
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockClient.On("SubmitOrder", ctx, mock.Anything).
		Return(nil, errors.New("pesapal: service unavailable")).Once()
	mockRepo.On("Finalize", ctx, mock.AnythingOfType("string"), model.DonationFailed, "").
		Return(nil).Once()

	_, err := svc.Donate(ctx, &dto.DonateRequest{
		DonorName: "Jane Doe",
		Email:     "a@b.com",
		Amount:    50000,
	})

	require.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestHandleCallbackMissingParams(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	svc := newDonationService(mockClient, mockRepo, new(MockNotifier))

	result := svc.HandleCallback(context.Background(), "", "don-1")
	assert.Equal(t, CallbackFailed, result.Status)

	result = svc.HandleCallback(context.Background(), "T1", "")
	assert.Equal(t, CallbackFailed, result.Status)

	// no store or remote calls happened
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "GetTransactionStatus", mock.Anything, mock.Anything)
}

func TestHandleCallbackUnknownReference(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	svc := newDonationService(mockClient, mockRepo, new(MockNotifier))
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, "don-x").Return(nil, gorm.ErrRecordNotFound).Once()

	result := svc.HandleCallback(ctx, "T1", "don-x")

	assert.Equal(t, CallbackFailed, result.Status)
	mockClient.AssertNotCalled(t, "GetTransactionStatus", mock.Anything, mock.Anything)
}

func TestHandleCallbackFinalizesDonation(t *testing.T) {
	tests := []struct {
		name           string
		upstreamStatus string
		wantStatus     model.DonationStatus
		wantUIState    string
	}{
		{name: "completed", upstreamStatus: "Completed", wantStatus: model.DonationCompleted, wantUIState: CallbackSuccess},
		{name: "failed", upstreamStatus: "FAILED", wantStatus: model.DonationFailed, wantUIState: CallbackFailed},
		{name: "cancelled", upstreamStatus: "cancelled", wantStatus: model.DonationCancelled, wantUIState: CallbackCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockPesapalClient)
			mockRepo := new(MockDonationRepository)
			mockNotifier := new(MockNotifier)
			svc := newDonationService(mockClient, mockRepo, mockNotifier)
			ctx := context.Background()

			pending := &model.Donation{
				ID:         "don-1",
				DonorName:  "Jane Doe",
				DonorEmail: "a@b.com",
				Amount:     50000,
				Status:     model.DonationPending,
			}

			mockRepo.On("FindByID", ctx, "don-1").Return(pending, nil).Once()
			mockClient.On("GetTransactionStatus", ctx, "T1").
				Return(&model.TransactionStatus{PaymentStatusDescription: tt.upstreamStatus}, nil).Once()
			mockRepo.On("Finalize", ctx, "don-1", tt.wantStatus, "T1").Return(nil).Once()
			if tt.wantStatus == model.DonationCompleted {
				mockNotifier.On("DonationReceipt", ctx, mock.Anything).Return().Once()
			}

			result := svc.HandleCallback(ctx, "T1", "don-1")

			assert.Equal(t, tt.wantUIState, result.Status)
			require.NotNil(t, result.Donation)
			assert.Equal(t, tt.wantStatus, result.Donation.Status)
			assert.Equal(t, "T1", result.Donation.TrackingID)
			mockRepo.AssertExpectations(t)
			mockNotifier.AssertExpectations(t)
		})
	}
}

func TestHandleCallbackIsIdempotentForTerminalRecords(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	svc := newDonationService(mockClient, mockRepo, new(MockNotifier))
	ctx := context.Background()

	completed := &model.Donation{
		ID:         "don-1",
		Status:     model.DonationCompleted,
		TrackingID: "T1",
	}
	mockRepo.On("FindByID", ctx, "don-1").Return(completed, nil).Twice()

	first := svc.HandleCallback(ctx, "T1", "don-1")
	second := svc.HandleCallback(ctx, "T1", "don-1")

	assert.Equal(t, CallbackSuccess, first.Status)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, "T1", second.Donation.TrackingID)
	// terminal records are never re-polled or re-written
	mockClient.AssertNotCalled(t, "GetTransactionStatus", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallbackLeavesPendingOnPollFailure(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	svc := newDonationService(mockClient, mockRepo, new(MockNotifier))
	ctx := context.Background()

	pending := &model.Donation{ID: "don-1", Status: model.DonationPending}
	mockRepo.On("FindByID", ctx, "don-1").Return(pending, nil).Once()
	mockClient.On("GetTransactionStatus", ctx, "T1").
		Return(nil, errors.New("pesapal: service unavailable")).Once()

	result := svc.HandleCallback(ctx, "T1", "don-1")

	assert.Equal(t, CallbackPending, result.Status)
	mockRepo.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallbackLeavesPendingOnUnmappedStatus(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	svc := newDonationService(mockClient, mockRepo, new(MockNotifier))
	ctx := context.Background()

	pending := &model.Donation{ID: "don-1", Status: model.DonationPending}
	mockRepo.On("FindByID", ctx, "don-1").Return(pending, nil).Once()
	mockClient.On("GetTransactionStatus", ctx, "T1").
		Return(&model.TransactionStatus{PaymentStatusDescription: "Processing"}, nil).Once()

	result := svc.HandleCallback(ctx, "T1", "don-1")

	assert.Equal(t, CallbackPending, result.Status)
	mockRepo.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMapPaymentStatus(t *testing.T) {
	tests := []struct {
		description string
		want        model.DonationStatus
	}{
		{"Completed", model.DonationCompleted},
		{"SUCCESS", model.DonationCompleted},
		{"successful", model.DonationCompleted},
		{"failed", model.DonationFailed},
		{"Invalid", model.DonationFailed},
		{"error", model.DonationFailed},
		{"cancelled", model.DonationCancelled},
		{"Canceled", model.DonationCancelled},
		{"Processing", model.DonationPending},
		{"", model.DonationPending},
		{"something-else", model.DonationPending},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapPaymentStatus(tt.description), "description %q", tt.description)
	}
}

func TestFinalizeFromUpstream(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	mockNotifier := new(MockNotifier)
	svc := newDonationService(mockClient, mockRepo, mockNotifier)
	ctx := context.Background()

	donation := &model.Donation{
		ID:         "don-1",
		DonorEmail: "a@b.com",
		Status:     model.DonationPending,
		TrackingID: "T1",
	}

	mockClient.On("GetTransactionStatus", ctx, "T1").
		Return(&model.TransactionStatus{PaymentStatusDescription: "Completed"}, nil).Once()
	mockRepo.On("Finalize", ctx, "don-1", model.DonationCompleted, "T1").Return(nil).Once()
	mockNotifier.On("DonationReceipt", ctx, mock.Anything).Return().Once()

	status, err := svc.FinalizeFromUpstream(ctx, donation)

	require.NoError(t, err)
	assert.Equal(t, model.DonationCompleted, status)
	mockRepo.AssertExpectations(t)
}

func TestFinalizeFromUpstreamSkipsNonTerminal(t *testing.T) {
	mockClient := new(MockPesapalClient)
	mockRepo := new(MockDonationRepository)
	svc := newDonationService(mockClient, mockRepo, new(MockNotifier))
	ctx := context.Background()

	donation := &model.Donation{ID: "don-1", Status: model.DonationPending, TrackingID: "T1"}

	mockClient.On("GetTransactionStatus", ctx, "T1").
		Return(&model.TransactionStatus{PaymentStatusDescription: "Pending"}, nil).Once()

	status, err := svc.FinalizeFromUpstream(ctx, donation)

	require.NoError(t, err)
	assert.Equal(t, model.DonationPending, status)
	mockRepo.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
