package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingExpired   BookingStatus = "EXPIRED"
)

type Booking struct {
	ID            int
	CustomerID    int
	ShowtimeID    int
	Seats         []BookingSeat
	TotalPrice    decimal.Decimal
	BookingDate   time.Time
	Status        BookingStatus
	PaymentMethod string
	TransactionID string
}

// BookingSeat records the price charged for the seat at booking time,
// which may differ from what the pricing engine would return later.
type BookingSeat struct {
	SeatID   int
	Label    string
	Category SeatCategory
	Price    decimal.Decimal
}

func (b *Booking) SeatIDs() []int {
	ids := make([]int, len(b.Seats))
	for i, s := range b.Seats {
		ids[i] = s.SeatID
	}

	return ids
}

// BookingRepository is the durable store of booking records. Create must
// persist the booking row and its seat rows atomically.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id int) (*Booking, error)
	GetByCustomer(ctx context.Context, customerID int, pagination Pagination) ([]Booking, *Metadata, error)
	UpdateStatus(ctx context.Context, id int, status BookingStatus) error
}
