// Package notifier fans booking lifecycle events out to registered
// observers. Dispatch is synchronous and in registration order; a failing
// observer is logged and never blocks the others.
package notifier

import (
	"context"
	"log/slog"

	"cinebook/internal/domain"
)

// Observer reacts to a single booking lifecycle event.
type Observer interface {
	Name() string
	OnBookingEvent(ctx context.Context, event domain.BookingEvent) error
}

type Dispatcher struct {
	observers []Observer
	logger    *slog.Logger
}

func NewDispatcher(logger *slog.Logger, observers ...Observer) *Dispatcher {
	return &Dispatcher{
		observers: observers,
		logger:    logger,
	}
}

func (d *Dispatcher) Register(observer Observer) {
	d.observers = append(d.observers, observer)
}

// Notify implements domain.EventSink.
func (d *Dispatcher) Notify(ctx context.Context, event domain.BookingEvent) {
	for _, observer := range d.observers {
		err := observer.OnBookingEvent(ctx, event)
		if err != nil {
			d.logger.Error("observer failed to handle booking event",
				"observer", observer.Name(),
				"event_type", event.Type,
				"booking_id", event.Booking.ID,
				"error", err,
			)
		}
	}
}
