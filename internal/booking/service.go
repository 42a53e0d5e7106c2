// Package booking orchestrates the booking workflow: seat reservation,
// price aggregation, durable persistence, and lifecycle event emission.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cinebook/internal/domain"
	"cinebook/internal/inventory"
	"cinebook/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeatInventory is the slice of the inventory the workflow depends on.
type SeatInventory interface {
	Reserve(ctx context.Context, showtimeID int, seatIDs []int) (*inventory.ReservationToken, error)
	Release(ctx context.Context, showtimeID int, seatIDs []int) error
}

// PersistenceError marks a booking store failure that the workflow has
// already compensated for by releasing the reserved seats.
type PersistenceError struct {
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("booking could not be persisted: %v", e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

type Service struct {
	bookingRepo  domain.BookingRepository
	showtimeRepo domain.ShowtimeRepository
	inventory    SeatInventory
	events       domain.EventSink
	logger       *slog.Logger
}

func NewService(
	bookingRepo domain.BookingRepository,
	showtimeRepo domain.ShowtimeRepository,
	inventory SeatInventory,
	events domain.EventSink,
	logger *slog.Logger) *Service {

	return &Service{
		bookingRepo:  bookingRepo,
		showtimeRepo: showtimeRepo,
		inventory:    inventory,
		events:       events,
		logger:       logger,
	}
}

// CreateBooking reserves the requested seats, prices them against the
// showtime, and persists a CONFIRMED booking. If persistence fails the
// reserved seats are released again before the error is returned, so seats
// are never left SOLD without a durable booking behind them.
func (s *Service) CreateBooking(
	ctx context.Context,
	customerID int,
	showtimeID int,
	seatIDs []int,
	paymentMethod string) (*domain.Booking, error) {

	if len(seatIDs) == 0 || len(seatIDs) > inventory.MaxSeatsPerBooking {
		return nil, domain.ErrInvalidSelection
	}

	showtime, err := s.showtimeRepo.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	token, err := s.inventory.Reserve(ctx, showtimeID, seatIDs)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		CustomerID:    customerID,
		ShowtimeID:    showtimeID,
		Seats:         make([]domain.BookingSeat, 0, len(token.Seats)),
		TotalPrice:    decimal.Zero,
		BookingDate:   time.Now(),
		Status:        domain.BookingPending,
		PaymentMethod: paymentMethod,
	}

	for _, seat := range token.Seats {
		price := pricing.Price(showtime.BasePrice, seat.Category, showtime.StartTime)

		booking.Seats = append(booking.Seats, domain.BookingSeat{
			SeatID:   seat.ID,
			Label:    seat.Label,
			Category: seat.Category,
			Price:    price,
		})
		booking.TotalPrice = booking.TotalPrice.Add(price)
	}

	if paymentMethod != "" {
		booking.TransactionID = uuid.New().String()
	}

	booking.Status = domain.BookingConfirmed

	err = s.bookingRepo.Create(ctx, booking)
	if err != nil {
		s.compensate(ctx, showtimeID, seatIDs)
		return nil, &PersistenceError{Cause: err}
	}

	s.events.Notify(ctx, domain.NewBookingEvent(domain.BookingCreatedEvent, *booking))

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"customer_id", customerID,
		"showtime_id", showtimeID,
		"seats", len(booking.Seats),
		"total_price", booking.TotalPrice,
	)

	return booking, nil
}

// CancelBooking releases the booking's seats and marks it CANCELLED.
func (s *Service) CancelBooking(ctx context.Context, bookingID int) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.Status == domain.BookingCancelled {
		return domain.ErrAlreadyCancelled
	}

	err = s.inventory.Release(ctx, booking.ShowtimeID, booking.SeatIDs())
	if err != nil {
		return fmt.Errorf("failed to release seats for booking %d: %w", bookingID, err)
	}

	err = s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingCancelled)
	if err != nil {
		if errors.Is(err, domain.ErrEditConflict) {
			return err
		}

		return &PersistenceError{Cause: err}
	}

	booking.Status = domain.BookingCancelled
	s.events.Notify(ctx, domain.NewBookingEvent(domain.BookingCancelledEvent, *booking))

	s.logger.Info("booking cancelled", "booking_id", bookingID)

	return nil
}

// Bookings lists the customer's bookings, newest first.
func (s *Service) Bookings(
	ctx context.Context,
	customerID int,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	return s.bookingRepo.GetByCustomer(ctx, customerID, pagination)
}

// Booking loads a single booking by id.
func (s *Service) Booking(ctx context.Context, bookingID int) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// compensate undoes a seat reservation after a persistence failure. A
// failing release is logged rather than returned: the original store error
// is the one the caller needs to see.
func (s *Service) compensate(ctx context.Context, showtimeID int, seatIDs []int) {
	err := s.inventory.Release(ctx, showtimeID, seatIDs)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("failed to release seats after persistence failure",
			"showtime_id", showtimeID,
			"seat_ids", seatIDs,
			"error", err,
		)
	}
}
