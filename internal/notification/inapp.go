package notification

import (
	"context"
	"fmt"

	"github.com/metinatakli/moviemate/internal/domain"
)

// InAppSink stores the event as a notification row the account can list.
type InAppSink struct {
	repo domain.NotificationRepository
}

func NewInAppSink(repo domain.NotificationRepository) *InAppSink {
	return &InAppSink{repo: repo}
}

func (s *InAppSink) Deliver(ctx context.Context, event domain.BookingEvent) error {
	purpose, message, err := Message(event)
	if err != nil {
		return err
	}

	notification := &domain.Notification{
		AccountID: event.Account.ID,
		Purpose:   purpose,
		Message:   message,
		Method:    domain.NotificationMethodInApp,
	}

	err = s.repo.Create(ctx, notification)
	if err != nil {
		return fmt.Errorf("in-app notification: %w", err)
	}

	return nil
}

// Message renders the text stored for an event.
func Message(event domain.BookingEvent) (domain.NotificationPurpose, string, error) {
	switch event.Kind {
	case domain.EventKindConfirmation:
		return domain.PurposeBookingConfirmation, fmt.Sprintf(
			"Your booking has been confirmed!\n"+
				"Movie: %s\n"+
				"Theatre: %s, %s\n"+
				"Date: %s at %s\n"+
				"Format: %s\n"+
				"Tickets: %d\n"+
				"Total: €%s\n"+
				"Booking ID: %d",
			event.MovieTitle,
			event.TheaterName, event.TheaterCity,
			event.ShowDate, event.ShowTime,
			event.Format,
			event.TicketCount,
			event.TotalPrice.StringFixed(2),
			event.BookingID,
		), nil

	case domain.EventKindCancellation:
		return domain.PurposeBookingCancellation, fmt.Sprintf(
			"Your booking has been cancelled and refunded.\n"+
				"Movie: %s\n"+
				"Theatre: %s, %s\n"+
				"Date: %s at %s\n"+
				"Refunded: €%s\n"+
				"Booking ID: %d",
			event.MovieTitle,
			event.TheaterName, event.TheaterCity,
			event.ShowDate, event.ShowTime,
			event.TotalPrice.StringFixed(2),
			event.BookingID,
		), nil

	case domain.EventKindWalletTopUp:
		return domain.PurposeWalletTopUp, fmt.Sprintf(
			"Your wallet has been topped up successfully!\n"+
				"Amount Added: €%s\n"+
				"New Balance: €%s",
			event.TotalPrice.StringFixed(2),
			event.NewBalance.StringFixed(2),
		), nil
	}

	return "", "", fmt.Errorf("unknown event kind %q", event.Kind)
}
