package app

import (
	"context"

	"github.com/metinatakli/movie-ticket-booking/internal/booking"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/metinatakli/movie-ticket-booking/internal/payment"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ListAvailableSeats(ctx context.Context, showID int) (*domain.SeatMap, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.SeatMap), args.Error(1)
}

func (m *MockBookingService) CreateBooking(
	ctx context.Context,
	actor domain.Actor,
	input booking.CreateBookingInput) (*domain.Booking, error) {

	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, actor domain.Actor, bookingID int) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ListBookings(
	ctx context.Context,
	actor domain.Actor,
	filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error) {

	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]domain.Booking), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockBookingService) CancelBooking(
	ctx context.Context,
	actor domain.Actor,
	bookingID int,
	reason string) (*domain.Booking, error) {

	args := m.Called(ctx, actor, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ProcessPayment(
	ctx context.Context,
	actor domain.Actor,
	input booking.ProcessPaymentInput) (*domain.Payment, error) {

	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockBookingService) GetPayment(ctx context.Context, actor domain.Actor, paymentID int) (*domain.Payment, error) {
	args := m.Called(ctx, actor, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockBookingService) ListPayments(
	ctx context.Context,
	actor domain.Actor,
	filter domain.PaymentFilter) ([]domain.Payment, *domain.Metadata, error) {

	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]domain.Payment), args.Get(1).(*domain.Metadata), args.Error(2)
}

type MockPaymentWebhook struct {
	mock.Mock
}

func (m *MockPaymentWebhook) Parse(payload []byte, signature string) (*payment.Confirmation, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*payment.Confirmation), args.Error(1)
}
