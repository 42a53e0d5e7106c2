package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresRevenueRepository aggregates income over confirmed bookings. The
// store is the single source of truth; nothing is accumulated in memory.
type PostgresRevenueRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRevenueRepository(db *pgxpool.Pool) *PostgresRevenueRepository {
	return &PostgresRevenueRepository{
		db: db,
	}
}

func (p *PostgresRevenueRepository) TotalIncome(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_price), 0)
		FROM bookings
		WHERE status = 'CONFIRMED'
	`

	var total decimal.Decimal
	err := p.db.QueryRow(ctx, query).Scan(&total)

	return total, err
}

func (p *PostgresRevenueRepository) IncomeForRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_price), 0)
		FROM bookings
		WHERE status = 'CONFIRMED'
		  AND booking_date >= $1
		  AND booking_date < $2
	`

	var total decimal.Decimal
	err := p.db.QueryRow(ctx, query, from, to).Scan(&total)

	return total, err
}
