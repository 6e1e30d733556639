package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

const unpaidReason = "unpaid at show time"

// CompletePastBookings marks confirmed bookings whose show has started as
// completed and returns how many were moved.
func (s *Service) CompletePastBookings(ctx context.Context) (int, error) {
	return s.sweep(ctx, domain.BookingStatusConfirmed, domain.BookingStatusCompleted, "", domain.EventBookingCompleted)
}

// CancelUnpaidPastBookings cancels pending bookings whose show has started,
// freeing their seats.
func (s *Service) CancelUnpaidPastBookings(ctx context.Context) (int, error) {
	return s.sweep(
		ctx,
		domain.BookingStatusPending,
		domain.BookingStatusCancelled,
		"Cancelled: "+unpaidReason,
		domain.EventBookingCancelled,
	)
}

// sweep moves one batch of bookings of status from to status to. Each booking
// is handled in its own transaction, so one failure does not stop the rest.
func (s *Service) sweep(
	ctx context.Context,
	from, to domain.BookingStatus,
	notes string,
	eventType domain.EventType) (int, error) {

	ids, err := s.bookings.GetIdsByStatusAndShowStartBefore(ctx, from, s.now(), s.cfg.HousekeepingBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to find %s bookings of past shows: %w", from, err)
	}

	moved := 0
	var errs []error

	for _, id := range ids {
		var booking *domain.Booking

		err := s.tx.WithTx(ctx, func(ctx context.Context) error {
			current, err := s.bookings.GetByIdForUpdate(ctx, id)
			if err != nil {
				return err
			}

			// changed since the batch was selected
			if current.Status != from {
				return nil
			}

			booking, err = s.transition(ctx, current, to, notes)
			if err != nil {
				return err
			}

			if to == domain.BookingStatusCancelled {
				return s.refundOnCancel(ctx, id)
			}

			return nil
		})
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				continue
			}

			s.logger.Error("housekeeping transition failed", "booking_id", id, "to", to, "error", err)
			errs = append(errs, fmt.Errorf("booking %d: %w", id, err))
			continue
		}

		if booking == nil {
			continue
		}

		moved++
		s.metrics.transition(ctx, string(to))
		s.publish(ctx, eventType, booking)
	}

	return moved, errors.Join(errs...)
}
