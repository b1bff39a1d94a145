package notification

import (
	"context"
	"fmt"

	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/metinatakli/moviemate/internal/mailer"
)

var emailTemplates = map[domain.EventKind]string{
	domain.EventKindConfirmation: "booking_confirmation.tmpl",
	domain.EventKindCancellation: "booking_cancellation.tmpl",
	domain.EventKindWalletTopUp:  "wallet_topup.tmpl",
}

type EmailSink struct {
	mailer mailer.Mailer
}

func NewEmailSink(m mailer.Mailer) *EmailSink {
	return &EmailSink{mailer: m}
}

func (s *EmailSink) Deliver(_ context.Context, event domain.BookingEvent) error {
	if event.Account.Email == "" {
		return nil
	}

	templateFile, ok := emailTemplates[event.Kind]
	if !ok {
		return fmt.Errorf("no email template for event kind %q", event.Kind)
	}

	err := s.mailer.Send(event.Account.Email, templateFile, event)
	if err != nil {
		return fmt.Errorf("email notification: %w", err)
	}

	return nil
}
