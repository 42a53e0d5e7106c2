// Package reports computes admin-facing revenue figures over confirmed
// bookings.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueRepository is implemented by the booking store's aggregation
// queries.
type RevenueRepository interface {
	TotalIncome(ctx context.Context) (decimal.Decimal, error)
	IncomeForRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

type RevenueService struct {
	repo RevenueRepository
}

func NewRevenueService(repo RevenueRepository) *RevenueService {
	return &RevenueService{repo: repo}
}

func (s *RevenueService) TotalIncome(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalIncome(ctx)
}

// IncomeForDate reports the income of a single calendar day.
func (s *RevenueService) IncomeForDate(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return s.repo.IncomeForRange(ctx, day, day.AddDate(0, 0, 1))
}

// IncomeForRange reports the income between the two dates, inclusive of
// both endpoints' calendar days.
func (s *RevenueService) IncomeForRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)

	return s.repo.IncomeForRange(ctx, start, end)
}
