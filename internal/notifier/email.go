package notifier

import (
	"context"
	"fmt"

	"cinebook/internal/domain"
	"cinebook/internal/mailer"
)

// EmailObserver mails the customer a confirmation or cancellation notice.
type EmailObserver struct {
	mailer    mailer.Mailer
	userRepo  domain.UserRepository
	templates map[domain.BookingEventType]string
}

func NewEmailObserver(m mailer.Mailer, userRepo domain.UserRepository) *EmailObserver {
	return &EmailObserver{
		mailer:   m,
		userRepo: userRepo,
		templates: map[domain.BookingEventType]string{
			domain.BookingCreatedEvent:   "booking_created.tmpl",
			domain.BookingConfirmedEvent: "booking_confirmed.tmpl",
			domain.BookingCancelledEvent: "booking_cancelled.tmpl",
		},
	}
}

func (o *EmailObserver) Name() string {
	return "email"
}

func (o *EmailObserver) OnBookingEvent(ctx context.Context, event domain.BookingEvent) error {
	template, ok := o.templates[event.Type]
	if !ok {
		return nil
	}

	user, err := o.userRepo.GetById(ctx, event.Booking.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to load customer %d: %w", event.Booking.CustomerID, err)
	}

	seatLabels := make([]string, len(event.Booking.Seats))
	for i, seat := range event.Booking.Seats {
		seatLabels[i] = seat.Label
	}

	data := map[string]any{
		"firstName":  user.FirstName,
		"bookingID":  event.Booking.ID,
		"seats":      seatLabels,
		"totalPrice": event.Booking.TotalPrice.StringFixed(2),
	}

	return o.mailer.Send(user.Email, template, data)
}
