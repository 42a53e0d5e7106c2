package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID              int
	Title           string
	DurationMinutes int
	CreatedAt       time.Time
}

type MovieRepository interface {
	GetAll(ctx context.Context, term string, pagination Pagination) ([]Movie, *Metadata, error)
	Create(ctx context.Context, movie *Movie) error
}
