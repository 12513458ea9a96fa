package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"church-site-backend/internal/client"
	"church-site-backend/internal/config"
	"church-site-backend/internal/dto"
	"church-site-backend/internal/model"
	"church-site-backend/internal/repository"
)

// UI states surfaced by the payment callback page.
const (
	CallbackSuccess   = "success"
	CallbackFailed    = "failed"
	CallbackCancelled = "cancelled"
	CallbackPending   = "pending"
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type DonationService interface {
	Donate(ctx context.Context, req *dto.DonateRequest) (*dto.DonateResponse, error)
	HandleCallback(ctx context.Context, orderTrackingID, merchantReference string) *dto.CallbackResult
	ListDonations(ctx context.Context) ([]*model.Donation, error)
	FinalizeFromUpstream(ctx context.Context, donation *model.Donation) (model.DonationStatus, error)
}

type donationServiceImpl struct {
	pesapalClient client.PesapalClient
	donationRepo  repository.DonationRepository
	notifier      Notifier
	cfg           config.Donation
	callbackURL   string
	ipnID         string
}

func NewDonationService(
	pesapalClient client.PesapalClient,
	donationRepo repository.DonationRepository,
	notifier Notifier,
	donationCfg config.Donation,
	pesapalCfg config.Pesapal,
) DonationService {
	return &donationServiceImpl{
		pesapalClient: pesapalClient,
		donationRepo:  donationRepo,
		notifier:      notifier,
		cfg:           donationCfg,
		callbackURL:   pesapalCfg.CallbackURL,
		ipnID:         pesapalCfg.IPNID,
	}
}

// Donate validates the submission, creates the pending record, then submits
// the order to Pesapal. The record id is the merchant reference that Pesapal
// echoes back on the callback.
func (s *donationServiceImpl) Donate(ctx context.Context, req *dto.DonateRequest) (*dto.DonateResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	donation := &model.Donation{
		ID:         uuid.New().String(),
		DonorName:  req.DonorName,
		DonorEmail: req.Email,
		DonorPhone: req.Phone,
		Message:    req.Message,
		Amount:     req.Amount,
		Currency:   s.cfg.Currency,
		Status:     model.DonationPending,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("create donation record: %w", err)
	}

	firstName, lastName := splitDonorName(req.DonorName)

	description := s.cfg.Description
	if req.Message != "" {
		description = fmt.Sprintf("%s - %s", s.cfg.Description, req.Message)
	}

	resp, err := s.pesapalClient.SubmitOrder(ctx, &model.SubmitOrderRequest{
		ID:             donation.ID,
		Currency:       s.cfg.Currency,
		Amount:         req.Amount,
		Description:    description,
		CallbackURL:    s.callbackURL,
		NotificationID: s.ipnID,
		BillingAddress: model.BillingAddress{
			EmailAddress: req.Email,
			PhoneNumber:  req.Phone,
			CountryCode:  s.cfg.CountryCode,
			FirstName:    firstName,
			LastName:     lastName,
		},
	})
	if err != nil {
		if ferr := s.donationRepo.Finalize(ctx, donation.ID, model.DonationFailed, ""); ferr != nil {
			log.WithError(ferr).WithField("donation_id", donation.ID).Error("mark donation failed")
		}
		return nil, fmt.Errorf("pesapal submit order: %w", err)
	}

	if err := s.donationRepo.SetTrackingID(ctx, donation.ID, resp.OrderTrackingID); err != nil {
		log.WithError(err).WithField("donation_id", donation.ID).Error("save tracking id")
	}

	return &dto.DonateResponse{
		DonationID:      donation.ID,
		OrderTrackingID: resp.OrderTrackingID,
		RedirectURL:     resp.RedirectURL,
	}, nil
}

func (s *donationServiceImpl) validate(req *dto.DonateRequest) error {
	if strings.TrimSpace(req.DonorName) == "" {
		return &ValidationError{Field: "donor_name", Reason: "required"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return &ValidationError{Field: "email", Reason: "required"}
	}
	if req.Amount < s.cfg.MinAmount {
		return &ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("minimum donation is %d %s", s.cfg.MinAmount, s.cfg.Currency),
		}
	}
	return nil
}

// HandleCallback finalizes a donation after the donor returns from the
// hosted payment page. It never errors out to the caller; every failure maps
// to a UI state.
func (s *donationServiceImpl) HandleCallback(ctx context.Context, orderTrackingID, merchantReference string) *dto.CallbackResult {
	if orderTrackingID == "" || merchantReference == "" {
		log.WithFields(log.Fields{
			"order_tracking_id":  orderTrackingID,
			"merchant_reference": merchantReference,
		}).Warn("payment callback missing parameters")
		return &dto.CallbackResult{Status: CallbackFailed}
	}

	donation, err := s.donationRepo.FindByID(ctx, merchantReference)
	if err != nil {
		log.WithError(err).WithField("merchant_reference", merchantReference).Warn("donation not found for callback")
		return &dto.CallbackResult{Status: CallbackFailed}
	}

	// A repeated callback for an already-finalized donation is a read-only
	// no-op: report the stored terminal state without polling again.
	if donation.Status.Terminal() {
		return &dto.CallbackResult{
			Status:   uiStateFor(donation.Status),
			Donation: donation,
		}
	}

	upstream, err := s.pesapalClient.GetTransactionStatus(ctx, orderTrackingID)
	if err != nil {
		// The donation stays pending; the sweeper picks it up later.
		log.WithError(err).WithField("donation_id", donation.ID).Error("poll transaction status")
		return &dto.CallbackResult{Status: CallbackPending, Donation: donation}
	}

	status := MapPaymentStatus(upstream.PaymentStatusDescription)
	if !status.Terminal() {
		log.WithFields(log.Fields{
			"donation_id":     donation.ID,
			"upstream_status": upstream.PaymentStatusDescription,
		}).Warn("unmapped payment status, leaving donation pending")
		return &dto.CallbackResult{Status: CallbackPending, Donation: donation}
	}

	if err := s.donationRepo.Finalize(ctx, donation.ID, status, orderTrackingID); err != nil {
		log.WithError(err).WithField("donation_id", donation.ID).Error("finalize donation")
		return &dto.CallbackResult{Status: CallbackFailed, Donation: donation}
	}

	donation.Status = status
	donation.TrackingID = orderTrackingID

	if status == model.DonationCompleted {
		s.notifier.DonationReceipt(ctx, donation)
	}

	return &dto.CallbackResult{
		Status:   uiStateFor(status),
		Donation: donation,
	}
}

func (s *donationServiceImpl) ListDonations(ctx context.Context) ([]*model.Donation, error) {
	return s.donationRepo.List(ctx)
}

// FinalizeFromUpstream re-polls a pending donation and persists the result
// if it reached a terminal state upstream. Used by the reconciliation
// sweeper for donors who never returned from the payment page.
func (s *donationServiceImpl) FinalizeFromUpstream(ctx context.Context, donation *model.Donation) (model.DonationStatus, error) {
	if donation.TrackingID == "" {
		return donation.Status, nil
	}

	upstream, err := s.pesapalClient.GetTransactionStatus(ctx, donation.TrackingID)
	if err != nil {
		return donation.Status, fmt.Errorf("poll transaction status: %w", err)
	}

	status := MapPaymentStatus(upstream.PaymentStatusDescription)
	if !status.Terminal() {
		return donation.Status, nil
	}

	if err := s.donationRepo.Finalize(ctx, donation.ID, status, donation.TrackingID); err != nil {
		return donation.Status, fmt.Errorf("finalize donation: %w", err)
	}

	if status == model.DonationCompleted {
		donation.Status = status
		s.notifier.DonationReceipt(ctx, donation)
	}

	return status, nil
}

// MapPaymentStatus maps Pesapal's human-readable status description to the
// local lifecycle status. Unrecognized descriptions map to pending so that
// reconciliation can revisit them instead of guessing an outcome.
func MapPaymentStatus(description string) model.DonationStatus {
	switch strings.ToLower(description) {
	case "completed", "success", "successful":
		return model.DonationCompleted
	case "failed", "invalid", "error":
		return model.DonationFailed
	case "cancelled", "canceled":
		return model.DonationCancelled
	default:
		return model.DonationPending
	}
}

func uiStateFor(status model.DonationStatus) string {
	switch status {
	case model.DonationCompleted:
		return CallbackSuccess
	case model.DonationFailed:
		return CallbackFailed
	case model.DonationCancelled:
		return CallbackCancelled
	default:
		return CallbackPending
	}
}

func splitDonorName(fullName string) (string, string) {
	names := strings.Fields(strings.TrimSpace(fullName))
	switch len(names) {
	case 0:
		return "Anonymous", "Donor"
	case 1:
		return names[0], "Donor"
	default:
		return names[0], strings.Join(names[1:], " ")
	}
}
