package integration_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"

	"cinebook/internal/domain"
)

type BaseSuite struct {
	suite.Suite
	db             *pgxpool.Pool
	redis          *redis.Client
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
	logger         *slog.Logger

	userID     int
	showtimeID int
	seatIDs    []int
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	db, err := pgxpool.New(ctx, postgresContainer.ConnectionString)
	if err != nil {
		log.Printf("failed to create connection pool: %s", err)
		return
	}

	s.db = db
	s.redis = redis.NewClient(&redis.Options{Addr: redisContainer.ConnectionString})
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *BaseSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if err := testcontainers.TerminateContainer(s.dbContainer.Container.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// SetupTest resets the database and seeds one customer, one movie, and a
// Saturday evening showtime with two rows of four seats each.
func (s *BaseSuite) SetupTest() {
	ctx := context.Background()

	_, err := s.db.Exec(ctx, `
		TRUNCATE booking_seats, bookings, showtime_seats, showtimes, seats, screens, movies, users
		RESTART IDENTITY CASCADE
	`)
	s.Require().NoError(err)

	s.Require().NoError(s.redis.FlushAll(ctx).Err())

	user := domain.User{
		FirstName: TestUserFirstName,
		LastName:  TestUserLastName,
		Email:     TestUserEmail,
		Role:      domain.RoleCustomer,
	}
	s.Require().NoError(user.Password.Set(TestUserPassword))

	err = s.db.QueryRow(ctx, `
		INSERT INTO users (role, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, user.Role, user.FirstName, user.LastName, user.Email, user.Password.Hash).Scan(&s.userID)
	s.Require().NoError(err)

	var movieID, screenID int

	err = s.db.QueryRow(ctx, `
		INSERT INTO movies (title, duration_minutes) VALUES ($1, 120) RETURNING id
	`, TestMovieTitle).Scan(&movieID)
	s.Require().NoError(err)

	err = s.db.QueryRow(ctx, `
		INSERT INTO screens (name, capacity) VALUES ($1, $2) RETURNING id
	`, TestScreenName, TestSeatRows*TestSeatsPerRow).Scan(&screenID)
	s.Require().NoError(err)

	s.seatIDs = nil

	for row := 1; row <= TestSeatRows; row++ {
		for col := 1; col <= TestSeatsPerRow; col++ {
			category := domain.SeatRegular
			if col == TestSeatsPerRow {
				category = domain.SeatVIP
			}

			var seatID int
			err = s.db.QueryRow(ctx, `
				INSERT INTO seats (screen_id, label, seat_row, seat_col, category)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, screenID, fmt.Sprintf("%c%d", 'A'+row-1, col), row, col, category).Scan(&seatID)
			s.Require().NoError(err)

			s.seatIDs = append(s.seatIDs, seatID)
		}
	}

	startTime := time.Date(2025, time.June, 7, 20, 0, 0, 0, time.UTC)

	err = s.db.QueryRow(ctx, `
		INSERT INTO showtimes (movie_id, screen_id, start_time, base_price, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, movieID, screenID, startTime, TestBasePrice, len(s.seatIDs)).Scan(&s.showtimeID)
	s.Require().NoError(err)

	for _, seatID := range s.seatIDs {
		_, err = s.db.Exec(ctx, `
			INSERT INTO showtime_seats (showtime_id, seat_id, status) VALUES ($1, $2, 'AVAILABLE')
		`, s.showtimeID, seatID)
		s.Require().NoError(err)
	}
}

func (s *BaseSuite) seatStatus(seatID int) domain.SeatStatus {
	var status domain.SeatStatus

	err := s.db.QueryRow(context.Background(), `
		SELECT status FROM showtime_seats WHERE showtime_id = $1 AND seat_id = $2
	`, s.showtimeID, seatID).Scan(&status)
	s.Require().NoError(err)

	return status
}
