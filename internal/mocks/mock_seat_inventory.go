package mocks

import (
	"context"

	"cinebook/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatInventory struct {
	mock.Mock
}

func (m *MockSeatInventory) Seats(ctx context.Context, showtimeID int) ([]domain.ShowtimeSeat, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowtimeSeat), args.Error(1)
}
