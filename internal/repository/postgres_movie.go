package repository

import (
	"context"

	"cinebook/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	term string,
	pagination domain.Pagination) ([]domain.Movie, *domain.Metadata, error) {

	query := `
		SELECT count(*) OVER(), id, title, duration_minutes, created_at
		FROM movies
		WHERE (to_tsvector('english', title) @@ plainto_tsquery('english', $1) OR $1 = '')
		ORDER BY title, id
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, term, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.DurationMinutes,
			&movie.CreatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, duration_minutes)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return p.db.QueryRow(ctx, query, movie.Title, movie.DurationMinutes).
		Scan(&movie.ID, &movie.CreatedAt)
}
