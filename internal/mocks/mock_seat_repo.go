package mocks

import (
	"context"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) GetActiveByTheater(ctx context.Context, theaterID int) ([]domain.Seat, error) {
	args := m.Called(ctx, theaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) GetByIds(ctx context.Context, seatIDs []int) ([]domain.Seat, error) {
	args := m.Called(ctx, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Seat), args.Error(1)
}
