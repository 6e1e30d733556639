package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByIdForUpdate(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetAll(
	ctx context.Context,
	filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error) {

	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]domain.Booking), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockBookingRepo) GetActiveSeatIdsByShow(ctx context.Context, showID int, seatIDs []int) ([]int, error) {
	args := m.Called(ctx, showID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]int), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(
	ctx context.Context,
	id int,
	from []domain.BookingStatus,
	to domain.BookingStatus,
	notes *string) (*domain.Booking, error) {

	args := m.Called(ctx, id, from, to, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) ReleaseSeats(ctx context.Context, bookingID int) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepo) GetIdsByStatusAndShowStartBefore(
	ctx context.Context,
	status domain.BookingStatus,
	cutoff time.Time,
	limit int) ([]int, error) {

	args := m.Called(ctx, status, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]int), args.Error(1)
}
