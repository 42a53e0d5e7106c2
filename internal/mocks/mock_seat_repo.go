package mocks

import (
	"context"

	"cinebook/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]domain.ShowtimeSeat, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowtimeSeat), args.Error(1)
}

func (m *MockSeatRepo) UpdateStatuses(ctx context.Context, showtimeID int, seatIDs []int, status domain.SeatStatus) error {
	args := m.Called(ctx, showtimeID, seatIDs, status)
	return args.Error(0)
}
