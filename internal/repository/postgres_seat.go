package repository

import (
	"context"

	"cinebook/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]domain.ShowtimeSeat, error) {
	query := `
		SELECT s.id, s.label, s.seat_row, s.seat_col, s.category, ss.status
		FROM showtime_seats ss
		JOIN seats s ON ss.seat_id = s.id
		WHERE ss.showtime_id = $1
		ORDER BY s.seat_row, s.seat_col
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.ShowtimeSeat, 0)

	for rows.Next() {
		seat := domain.ShowtimeSeat{ShowtimeID: showtimeID}

		err = rows.Scan(
			&seat.ID,
			&seat.Label,
			&seat.Row,
			&seat.Col,
			&seat.Category,
			&seat.Status,
		)

		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

// UpdateStatuses applies one status to the whole seat set in a single
// statement, so the transition is atomic from the point of view of readers.
func (p *PostgresSeatRepository) UpdateStatuses(
	ctx context.Context,
	showtimeID int,
	seatIDs []int,
	status domain.SeatStatus) error {

	query := `
		UPDATE showtime_seats
		SET status = $1
		WHERE showtime_id = $2 AND seat_id = ANY($3)
	`

	_, err := p.db.Exec(ctx, query, status, showtimeID, seatIDs)
	return err
}
