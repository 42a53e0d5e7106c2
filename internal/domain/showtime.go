package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Showtime is immutable once scheduled; the booking workflow never writes
// to it directly.
type Showtime struct {
	ID         int
	MovieID    int
	MovieTitle string
	ScreenID   int
	ScreenName string
	StartTime  time.Time
	BasePrice  decimal.Decimal
	Capacity   int
}

type ShowtimeRepository interface {
	GetByID(ctx context.Context, id int) (*Showtime, error)
}
