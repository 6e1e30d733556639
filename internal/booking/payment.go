package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

type ProcessPaymentInput struct {
	BookingID     int
	Method        domain.PaymentMethod
	TransactionID *string
}

// ProcessPayment records a completed payment for a pending booking and
// confirms it. Both writes commit together or not at all.
func (s *Service) ProcessPayment(
	ctx context.Context,
	actor domain.Actor,
	input ProcessPaymentInput) (*domain.Payment, error) {

	if !input.Method.Valid() {
		return nil, domain.NewError(domain.ErrInvalidRequest, fmt.Sprintf("unknown payment method %q", input.Method))
	}

	var (
		payment *domain.Payment
		booking *domain.Booking
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.bookings.GetByIdForUpdate(ctx, input.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.NewError(domain.ErrNotFound, "booking not found")
			}

			return fmt.Errorf("failed to lock booking %d: %w", input.BookingID, err)
		}

		// bookings of other customers are reported as missing
		if !actor.IsAdmin() && !current.OwnedBy(actor) {
			return domain.NewError(domain.ErrNotFound, "booking not found")
		}

		switch current.Status {
		case domain.BookingStatusCancelled:
			return domain.NewError(domain.ErrInvalidState, "cannot pay for a cancelled booking")
		case domain.BookingStatusCompleted:
			return domain.NewError(domain.ErrInvalidState, "cannot pay for a completed booking")
		case domain.BookingStatusConfirmed:
			return domain.NewError(domain.ErrInvalidState, "booking is already confirmed")
		}

		existing, err := s.payments.GetByBookingId(ctx, current.ID)
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			return fmt.Errorf("failed to fetch payment of booking %d: %w", current.ID, err)
		}

		if existing != nil && existing.Status == domain.PaymentStatusCompleted {
			return domain.NewError(domain.ErrInvalidState, "payment already completed for this booking")
		}

		paidAt := s.now()
		p := &domain.Payment{
			BookingID:     current.ID,
			UserID:        current.UserID,
			Method:        input.Method,
			TransactionID: input.TransactionID,
			Amount:        current.TotalAmount,
			Currency:      s.cfg.Currency,
			Status:        domain.PaymentStatusCompleted,
			PaidAt:        &paidAt,
		}

		err = s.payments.Upsert(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to save payment of booking %d: %w", current.ID, err)
		}

		booking, err = s.transition(ctx, current, domain.BookingStatusConfirmed, "")
		if err != nil {
			return err
		}

		payment = p
		return nil
	})
	if err != nil {
		return nil, contentionToConflict(err)
	}

	s.metrics.payments.Add(ctx, 1)
	s.metrics.transition(ctx, string(domain.BookingStatusConfirmed))
	s.publish(ctx, domain.EventBookingConfirmed, booking)

	return payment, nil
}

// GetPayment returns a payment to an admin or to the owner of the paid booking.
// Payments of other customers are reported as missing.
func (s *Service) GetPayment(ctx context.Context, actor domain.Actor, paymentID int) (*domain.Payment, error) {
	payment, err := s.payments.GetById(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "payment not found")
		}

		return nil, fmt.Errorf("failed to fetch payment %d: %w", paymentID, err)
	}

	if !actor.IsAdmin() && payment.UserID != actor.UserID {
		return nil, domain.NewError(domain.ErrNotFound, "payment not found")
	}

	return payment, nil
}

// ListPayments pages through payments the way ListBookings does: customers see
// the payments of their own bookings, admins see all of them.
func (s *Service) ListPayments(
	ctx context.Context,
	actor domain.Actor,
	filter domain.PaymentFilter) ([]domain.Payment, *domain.Metadata, error) {

	if err := validatePage(filter.Pagination); err != nil {
		return nil, nil, err
	}

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, nil, domain.NewError(domain.ErrInvalidRequest, "unknown payment status")
	}

	if !actor.IsAdmin() {
		userID := actor.UserID
		filter.UserID = &userID
	}

	payments, metadata, err := s.payments.GetAll(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, metadata, nil
}
