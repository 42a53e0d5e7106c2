package domain

import (
	"context"
	"time"
)

type BookingEventType string

const (
	BookingCreatedEvent   BookingEventType = "booking.created"
	BookingConfirmedEvent BookingEventType = "booking.confirmed"
	BookingCancelledEvent BookingEventType = "booking.cancelled"
)

// BookingEvent carries a snapshot of the booking at the time of emission.
type BookingEvent struct {
	Type       BookingEventType
	Booking    Booking
	OccurredAt time.Time
}

func NewBookingEvent(eventType BookingEventType, booking Booking) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		Booking:    booking,
		OccurredAt: time.Now(),
	}
}

// EventSink receives booking lifecycle events. Delivery is synchronous;
// implementations must not block on external I/O longer than the request
// they are part of.
type EventSink interface {
	Notify(ctx context.Context, event BookingEvent)
}
