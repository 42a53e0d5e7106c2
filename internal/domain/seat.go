package domain

import "context"

type SeatCategory string

const (
	SeatStandard   SeatCategory = "STANDARD"
	SeatRegular    SeatCategory = "REGULAR"
	SeatPremium    SeatCategory = "PREMIUM"
	SeatVIP        SeatCategory = "VIP"
	SeatWheelchair SeatCategory = "WHEELCHAIR"
)

type SeatStatus string

const (
	SeatAvailable   SeatStatus = "AVAILABLE"
	SeatHeld        SeatStatus = "HELD"
	SeatSold        SeatStatus = "SOLD"
	SeatUnavailable SeatStatus = "UNAVAILABLE"
)

// Seat identity (id, label, category) is fixed at screen-configuration time.
// Availability is scoped to a showtime, see ShowtimeSeat.
type Seat struct {
	ID       int
	Label    string
	Row      int
	Col      int
	Category SeatCategory
}

type ShowtimeSeat struct {
	Seat
	ShowtimeID int
	Status     SeatStatus
}

func (s ShowtimeSeat) Available() bool {
	return s.Status == SeatAvailable
}

type SeatRepository interface {
	GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]ShowtimeSeat, error)
	UpdateStatuses(ctx context.Context, showtimeID int, seatIDs []int, status SeatStatus) error
}
