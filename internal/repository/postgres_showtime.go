package repository

import (
	"context"
	"errors"

	"cinebook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetByID(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT
			sh.id,
			sh.movie_id,
			m.title,
			sh.screen_id,
			sc.name,
			sh.start_time,
			sh.base_price,
			sh.capacity
		FROM showtimes sh
		JOIN movies m ON sh.movie_id = m.id
		JOIN screens sc ON sh.screen_id = sc.id
		WHERE sh.id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.MovieTitle,
		&showtime.ScreenID,
		&showtime.ScreenName,
		&showtime.StartTime,
		&showtime.BasePrice,
		&showtime.Capacity,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}
