package mocks

import (
	"context"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepo struct {
	mock.Mock
	domain.PaymentRepository
}

func (m *MockPaymentRepo) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetAll(
	ctx context.Context,
	filter domain.PaymentFilter) ([]domain.Payment, *domain.Metadata, error) {

	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]domain.Payment), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockPaymentRepo) GetByBookingId(ctx context.Context, bookingID int) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) Upsert(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, bookingID int, status domain.PaymentStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}
