package service

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	log "github.com/sirupsen/logrus"

	"church-site-backend/internal/config"
	"church-site-backend/internal/model"
)

// Notifier sends best-effort emails. Failures are logged, never propagated;
// a missing receipt must not fail a completed donation.
type Notifier interface {
	DonationReceipt(ctx context.Context, donation *model.Donation)
	PrayerRequestReceived(ctx context.Context, request *model.PrayerRequest)
}

// NewSMTPNotifier returns a no-op notifier when SMTP is not configured.
func NewSMTPNotifier(smtpCfg config.SMTP) Notifier {
	if smtpCfg.Host == "" || smtpCfg.From == "" {
		log.Info("smtp not configured, email notifications disabled")
		return &noopNotifier{}
	}
	return &smtpNotifier{cfg: smtpCfg}
}

type smtpNotifier struct {
	cfg config.SMTP
}

func (n *smtpNotifier) DonationReceipt(_ context.Context, donation *model.Donation) {
	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{donation.DonorEmail}
	e.Subject = "Thank you for your donation"
	e.Text = []byte(fmt.Sprintf(
		"Dear %s,\n\nThank you for your donation of %d %s to River of Life Ministries.\nReference: %s\n\nGod bless you!",
		donation.DonorName,
		donation.Amount,
		donation.Currency,
		donation.ID,
	))

	n.send(e, "donation receipt")
}

func (n *smtpNotifier) PrayerRequestReceived(_ context.Context, request *model.PrayerRequest) {
	if n.cfg.AdminAddr == "" {
		return
	}

	name := request.Name
	if request.IsAnonymous {
		name = "Anonymous"
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{n.cfg.AdminAddr}
	e.Subject = "New prayer request"
	e.Text = []byte(fmt.Sprintf("A new prayer request was submitted by %s:\n\n%s", name, request.Request))

	n.send(e, "prayer request notification")
}

func (n *smtpNotifier) send(e *email.Email, kind string) {
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)

	if err := e.Send(addr, auth); err != nil {
		log.WithError(err).WithField("to", e.To).Errorf("failed to send %s", kind)
		return
	}
	log.WithField("to", e.To).Infof("sent %s", kind)
}

type noopNotifier struct{}

func (*noopNotifier) DonationReceipt(context.Context, *model.Donation) {}

func (*noopNotifier) PrayerRequestReceived(context.Context, *model.PrayerRequest) {}
