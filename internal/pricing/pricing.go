// Package pricing computes ticket prices from a showtime's base price, the
// seat category, and the showtime's start time.
package pricing

import (
	"time"

	"cinebook/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	regularMultiplier = decimal.NewFromInt(1)
	premiumMultiplier = decimal.RequireFromString("1.5")
	vipMultiplier     = decimal.NewFromInt(2)

	weekendSurcharge = decimal.RequireFromString("0.20")
	eveningSurcharge = decimal.RequireFromString("0.25")
)

const (
	eveningStartHour = 18
	eveningEndHour   = 22
)

// Price returns basePrice * categoryMultiplier * temporalMultiplier. The
// category and temporal factors compose multiplicatively with each other,
// but the weekend and evening surcharges are additive on top of 1.0:
// a VIP seat on a Saturday at 20:00 with a base of 10.00 costs
// 10.00 * 2.0 * (1.0 + 0.20 + 0.25) = 29.00.
func Price(basePrice decimal.Decimal, category domain.SeatCategory, showtimeStart time.Time) decimal.Decimal {
	return basePrice.
		Mul(categoryMultiplier(category)).
		Mul(temporalMultiplier(showtimeStart))
}

func categoryMultiplier(category domain.SeatCategory) decimal.Decimal {
	switch category {
	case domain.SeatPremium:
		return premiumMultiplier
	case domain.SeatVIP:
		return vipMultiplier
	default:
		// STANDARD, REGULAR and WHEELCHAIR all price at the base rate.
		return regularMultiplier
	}
}

func temporalMultiplier(start time.Time) decimal.Decimal {
	multiplier := decimal.NewFromInt(1)

	if isWeekend(start) {
		multiplier = multiplier.Add(weekendSurcharge)
	}

	if isEvening(start) {
		multiplier = multiplier.Add(eveningSurcharge)
	}

	return multiplier
}

// Weekend pricing applies from Friday through Sunday of the showtime's
// local date.
func isWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}

	return false
}

// The evening window is 18:00 through 22:59 local time, matching the peak
// slots of the schedule.
func isEvening(t time.Time) bool {
	hour := t.Hour()
	return hour >= eveningStartHour && hour <= eveningEndHour
}
