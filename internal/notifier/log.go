package notifier

import (
	"context"
	"log/slog"

	"cinebook/internal/domain"
)

// LogObserver writes an audit line for every booking lifecycle event. It
// also stands in for the SMS channel of the original system, which only
// ever printed to the console.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Name() string {
	return "log"
}

func (o *LogObserver) OnBookingEvent(ctx context.Context, event domain.BookingEvent) error {
	o.logger.Info("booking lifecycle event",
		"event_type", event.Type,
		"booking_id", event.Booking.ID,
		"customer_id", event.Booking.CustomerID,
		"showtime_id", event.Booking.ShowtimeID,
		"status", event.Booking.Status,
		"total_price", event.Booking.TotalPrice,
		"occurred_at", event.OccurredAt,
	)

	return nil
}
