package worker

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"church-site-backend/internal/config"
	"church-site-backend/internal/repository"
	"church-site-backend/internal/service"
)

// Reconciler sweeps donations stuck in pending because the donor never came
// back from the hosted payment page. It re-polls Pesapal for each one and
// finalizes those that reached a terminal state upstream.
type Reconciler struct {
	donationService service.DonationService
	donationRepo    repository.DonationRepository
	interval        time.Duration
	pendingAfter    time.Duration
}

func NewReconciler(
	donationService service.DonationService,
	donationRepo repository.DonationRepository,
	sweeperCfg config.Sweeper,
) *Reconciler {
	return &Reconciler{
		donationService: donationService,
		donationRepo:    donationRepo,
		interval:        time.Duration(sweeperCfg.IntervalMin) * time.Minute,
		pendingAfter:    time.Duration(sweeperCfg.PendingAfterMin) * time.Minute,
	}
}

// Run blocks until ctx is cancelled. Call it in its own goroutine.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.WithField("interval", r.interval).Info("donation reconciler started")

	for {
		select {
		case <-ctx.Done():
			log.Info("donation reconciler stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs a single reconciliation pass.
func (r *Reconciler) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.pendingAfter)

	donations, err := r.donationRepo.FindStalePending(ctx, cutoff)
	if err != nil {
		log.WithError(err).Error("list stale pending donations")
		return
	}
	if len(donations) == 0 {
		return
	}

	log.WithField("count", len(donations)).Info("reconciling stale pending donations")

	for _, donation := range donations {
		if donation.TrackingID == "" {
			// Never submitted to the gateway; nothing upstream to ask.
			log.WithField("donation_id", donation.ID).Warn("pending donation has no tracking id")
			continue
		}

		status, err := r.donationService.FinalizeFromUpstream(ctx, donation)
		if err != nil {
			log.WithError(err).WithField("donation_id", donation.ID).Warn("reconcile donation")
			continue
		}

		if status.Terminal() {
			log.WithFields(log.Fields{
				"donation_id": donation.ID,
				"status":      status,
			}).Info("donation reconciled")
		}
	}
}
