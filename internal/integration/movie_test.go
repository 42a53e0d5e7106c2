package integration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"cinebook/internal/domain"
	"cinebook/internal/repository"
)

type MovieIntegrationSuite struct {
	BaseSuite
	movieRepo *repository.PostgresMovieRepository
}

func (s *MovieIntegrationSuite) SetupTest() {
	s.BaseSuite.SetupTest()

	s.movieRepo = repository.NewPostgresMovieRepository(s.db)
}

func TestMovieIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(MovieIntegrationSuite))
}

func (s *MovieIntegrationSuite) TestCreateAssignsIdAndTimestamp() {
	ctx := context.Background()

	movie := &domain.Movie{Title: "Arrival", DurationMinutes: 116}

	err := s.movieRepo.Create(ctx, movie)
	s.Require().NoError(err)

	s.NotZero(movie.ID)
	s.False(movie.CreatedAt.IsZero())
}

func (s *MovieIntegrationSuite) TestGetAllFiltersByTerm() {
	ctx := context.Background()

	err := s.movieRepo.Create(ctx, &domain.Movie{Title: "Arrival", DurationMinutes: 116})
	s.Require().NoError(err)

	pagination := domain.Pagination{Page: 1, PageSize: 10}

	// The base suite already seeded one movie; an empty term matches both.
	movies, metadata, err := s.movieRepo.GetAll(ctx, "", pagination)
	s.Require().NoError(err)
	s.Len(movies, 2)
	s.Equal(2, metadata.TotalRecords)

	movies, metadata, err = s.movieRepo.GetAll(ctx, "arrival", pagination)
	s.Require().NoError(err)
	s.Require().Len(movies, 1)
	s.Equal("Arrival", movies[0].Title)
	s.Equal(116, movies[0].DurationMinutes)
	s.Equal(1, metadata.TotalRecords)
}

func (s *MovieIntegrationSuite) TestGetAllPaginates() {
	ctx := context.Background()

	for _, title := range []string{"Arrival", "Blade Runner", "Coherence"} {
		err := s.movieRepo.Create(ctx, &domain.Movie{Title: title, DurationMinutes: 100})
		s.Require().NoError(err)
	}

	movies, metadata, err := s.movieRepo.GetAll(ctx, "", domain.Pagination{Page: 2, PageSize: 2})
	s.Require().NoError(err)

	s.Len(movies, 2)
	s.Equal(4, metadata.TotalRecords)
	s.Equal(2, metadata.LastPage)
	s.Equal(2, metadata.CurrentPage)
}
