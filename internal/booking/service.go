// Package booking implements the seat reservation core: pricing and
// availability of a show's seats, the reservation protocol, the booking
// lifecycle and payment reconciliation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultReason = "No reason provided"
	maxPageSize   = 100
)

type Config struct {
	// ReferenceAttempts bounds how many booking references are tried before
	// giving up on a reservation.
	ReferenceAttempts int
	Currency          string
	// HousekeepingBatchSize caps the bookings handled per housekeeping run.
	HousekeepingBatchSize int
}

type CreateBookingInput struct {
	ShowID  int
	SeatIDs []int
	Notes   string
}

type Service struct {
	cfg          Config
	logger       *slog.Logger
	tx           domain.Transactor
	shows        domain.ShowRepository
	seats        domain.SeatRepository
	bookings     domain.BookingRepository
	payments     domain.PaymentRepository
	publisher    domain.EventPublisher
	availability *AvailabilityIndex
	metrics      *metrics
	tracer       trace.Tracer
	now          func() time.Time
}

func NewService(
	cfg Config,
	logger *slog.Logger,
	tx domain.Transactor,
	shows domain.ShowRepository,
	seats domain.SeatRepository,
	bookings domain.BookingRepository,
	payments domain.PaymentRepository,
	publisher domain.EventPublisher) (*Service, error) {

	if cfg.ReferenceAttempts < 1 {
		cfg.ReferenceAttempts = 1
	}

	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}

	if cfg.HousekeepingBatchSize < 1 {
		cfg.HousekeepingBatchSize = 100
	}

	metrics, err := newMetrics(otel.Meter(instrumentationName))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking metrics: %w", err)
	}

	return &Service{
		cfg:          cfg,
		logger:       logger,
		tx:           tx,
		shows:        shows,
		seats:        seats,
		bookings:     bookings,
		payments:     payments,
		publisher:    publisher,
		availability: NewAvailabilityIndex(shows, seats, bookings),
		metrics:      metrics,
		tracer:       otel.Tracer(instrumentationName),
		now:          time.Now,
	}, nil
}

func (s *Service) ListAvailableSeats(ctx context.Context, showID int) (*domain.SeatMap, error) {
	return s.availability.AvailableSeats(ctx, showID)
}

func (s *Service) IsSeatAvailable(ctx context.Context, showID, seatID int) (bool, error) {
	return s.availability.IsSeatAvailable(ctx, showID, seatID)
}

// CreateBooking claims input.SeatIDs for the show on behalf of actor. Either
// one pending booking holding all the seats is created or nothing is written.
func (s *Service) CreateBooking(
	ctx context.Context,
	actor domain.Actor,
	input CreateBookingInput) (*domain.Booking, error) {

	ctx, span := s.tracer.Start(ctx, "booking.CreateBooking", trace.WithAttributes(
		attribute.Int("show.id", input.ShowID),
		attribute.IntSlice("seat.ids", input.SeatIDs),
	))
	defer span.End()

	show, seats, err := s.validateReservation(ctx, input)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var booking *domain.Booking

	for attempt := 1; attempt <= s.cfg.ReferenceAttempts; attempt++ {
		booking, err = s.reserve(ctx, actor, show.ID, seats, input.Notes)
		if !errors.Is(err, domain.ErrDuplicateReference) {
			break
		}

		s.logger.Warn("booking reference collision, retrying", "show_id", show.ID, "attempt", attempt)
	}

	if err != nil {
		outcome := "error"

		var bookingErr *domain.BookingError
		if errors.As(err, &bookingErr) && errors.Is(err, domain.ErrConflict) {
			outcome = "conflict"
			s.metrics.conflicts.Add(ctx, 1)
			s.logger.Warn("seat reservation conflict",
				"show_id", show.ID,
				"user_id", actor.UserID,
				"seats", bookingErr.Seats,
			)
		}

		s.metrics.reserved(ctx, start, outcome)

		if errors.Is(err, domain.ErrDuplicateReference) {
			return nil, fmt.Errorf("no unique booking reference after %d attempts: %w", s.cfg.ReferenceAttempts, err)
		}

		return nil, err
	}

	s.metrics.reserved(ctx, start, "created")
	s.metrics.bookings.Add(ctx, 1)
	s.publish(ctx, domain.EventBookingCreated, booking)

	return booking, nil
}

// validateReservation checks the show and the requested seats. The checks run
// in a fixed order and the first failing one decides the error.
func (s *Service) validateReservation(
	ctx context.Context,
	input CreateBookingInput) (*domain.Show, []domain.Seat, error) {

	show, err := s.availability.activeShow(ctx, input.ShowID)
	if err != nil {
		return nil, nil, err
	}

	if len(input.SeatIDs) == 0 {
		return nil, nil, domain.NewError(domain.ErrInvalidRequest, "at least one seat must be selected")
	}

	seen := make(map[int]struct{}, len(input.SeatIDs))
	var duplicates []string

	for _, id := range input.SeatIDs {
		if _, ok := seen[id]; ok {
			duplicates = append(duplicates, strconv.Itoa(id))
			continue
		}

		seen[id] = struct{}{}
	}

	if len(duplicates) > 0 {
		return nil, nil, domain.NewError(domain.ErrInvalidRequest, "duplicate seats selected", duplicates...)
	}

	found, err := s.seats.GetByIds(ctx, input.SeatIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch seats: %w", err)
	}

	byID := make(map[int]domain.Seat, len(found))
	for _, seat := range found {
		byID[seat.ID] = seat
	}

	seats := make([]domain.Seat, 0, len(input.SeatIDs))
	var invalid []string

	for _, id := range input.SeatIDs {
		seat, ok := byID[id]
		switch {
		case !ok:
			invalid = append(invalid, strconv.Itoa(id))
		case seat.TheaterID != show.TheaterID || !seat.IsActive:
			invalid = append(invalid, seat.SeatNumber)
		default:
			seats = append(seats, seat)
		}
	}

	if len(invalid) > 0 {
		return nil, nil, domain.NewError(
			domain.ErrInvalidRequest,
			"seat(s) do not belong to this show's theater or are not available",
			invalid...,
		)
	}

	return show, seats, nil
}

// reserve runs the check-and-claim under the per-show lock.
func (s *Service) reserve(
	ctx context.Context,
	actor domain.Actor,
	showID int,
	seats []domain.Seat,
	notes string) (*domain.Booking, error) {

	seatIDs := make([]int, len(seats))
	for i, seat := range seats {
		seatIDs[i] = seat.ID
	}

	var booking *domain.Booking

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		show, err := s.shows.LockById(ctx, showID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.NewError(domain.ErrNotFound, "show not found")
			}

			return fmt.Errorf("failed to lock show %d: %w", showID, err)
		}

		if !show.IsActive {
			return domain.NewError(domain.ErrNotFound, "show not found")
		}

		taken, err := s.availability.takenSeats(ctx, show.ID, seatIDs)
		if err != nil {
			return err
		}

		if len(taken) > 0 {
			return domain.NewError(domain.ErrConflict, "seat(s) already booked", seatNumbers(seats, taken)...)
		}

		b := &domain.Booking{
			UserID:    actor.UserID,
			ShowID:    show.ID,
			Status:    domain.BookingStatusPending,
			Reference: domain.NewBookingReference(),
			Notes:     notes,
			Seats:     make([]domain.SeatAssignment, 0, len(seats)),
		}

		prices := make([]decimal.Decimal, 0, len(seats))
		for _, seat := range seats {
			price := domain.SeatPrice(show.BasePrice, seat.PriceMultiplier)
			prices = append(prices, price)

			b.Seats = append(b.Seats, domain.SeatAssignment{
				ShowID:     show.ID,
				SeatID:     seat.ID,
				SeatNumber: seat.SeatNumber,
				Price:      price,
			})
		}

		b.TotalAmount = domain.TotalPrice(prices...)

		err = s.bookings.Create(ctx, b)
		if err != nil {
			var assigned *domain.SeatAssignedError
			if errors.As(err, &assigned) {
				return domain.NewError(
					domain.ErrConflict,
					"seat(s) already booked",
					seatNumbers(seats, map[int]struct{}{assigned.SeatID: {}})...,
				)
			}

			// Without the seat id every requested seat is a suspect.
			if errors.Is(err, domain.ErrSeatAlreadyAssigned) {
				return domain.NewError(domain.ErrConflict, "seat(s) already booked", seatNumbers(seats, nil)...)
			}

			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, contentionToConflict(err)
	}

	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, actor domain.Actor, bookingID int) (*domain.Booking, error) {
	booking, err := s.bookings.GetById(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "booking not found")
		}

		return nil, fmt.Errorf("failed to fetch booking %d: %w", bookingID, err)
	}

	if !actor.IsAdmin() && !booking.OwnedBy(actor) {
		return nil, domain.NewError(domain.ErrForbidden, "you do not have permission to view this booking")
	}

	return booking, nil
}

// ListBookings returns a page of bookings. Customers only ever see their own;
// admins see everyone's unless filter.UserID narrows it.
func (s *Service) ListBookings(
	ctx context.Context,
	actor domain.Actor,
	filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error) {

	if err := validatePage(filter.Pagination); err != nil {
		return nil, nil, err
	}

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, nil, domain.NewError(domain.ErrInvalidRequest, "unknown booking status")
	}

	if !actor.IsAdmin() {
		userID := actor.UserID
		filter.UserID = &userID
	}

	bookings, metadata, err := s.bookings.GetAll(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, metadata, nil
}

// CancelBooking cancels a pending or confirmed booking, frees its seats and
// refunds a completed payment, all in one transaction.
func (s *Service) CancelBooking(
	ctx context.Context,
	actor domain.Actor,
	bookingID int,
	reason string) (*domain.Booking, error) {

	if reason == "" {
		reason = defaultReason
	}

	var booking *domain.Booking

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.bookings.GetByIdForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.NewError(domain.ErrNotFound, "booking not found")
			}

			return fmt.Errorf("failed to lock booking %d: %w", bookingID, err)
		}

		if !actor.IsAdmin() && !current.OwnedBy(actor) {
			return domain.NewError(domain.ErrForbidden, "you do not have permission to cancel this booking")
		}

		booking, err = s.transition(ctx, current, domain.BookingStatusCancelled, "Cancelled: "+reason)
		if err != nil {
			return err
		}

		return s.refundOnCancel(ctx, bookingID)
	})
	if err != nil {
		return nil, contentionToConflict(err)
	}

	s.metrics.transition(ctx, string(domain.BookingStatusCancelled))
	s.publish(ctx, domain.EventBookingCancelled, booking)

	return booking, nil
}

// refundOnCancel marks the booking's payment, if there is one, as refunded.
func (s *Service) refundOnCancel(ctx context.Context, bookingID int) error {
	payment, err := s.payments.GetByBookingId(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil
		}

		return fmt.Errorf("failed to fetch payment of booking %d: %w", bookingID, err)
	}

	if payment.Status == domain.PaymentStatusRefunded {
		return nil
	}

	err = s.payments.UpdateStatus(ctx, bookingID, domain.PaymentStatusRefunded)
	if err != nil {
		return fmt.Errorf("failed to refund payment of booking %d: %w", bookingID, err)
	}

	return nil
}

// transition moves a booking read FOR UPDATE to status to. The update is
// conditional on the status still being one it may legally leave from, and
// seats are released when the booking stops being active.
func (s *Service) transition(
	ctx context.Context,
	current *domain.Booking,
	to domain.BookingStatus,
	notes string) (*domain.Booking, error) {

	if !current.Status.CanTransitionTo(to) {
		return nil, domain.NewError(
			domain.ErrInvalidState,
			fmt.Sprintf("booking cannot move from %s to %s", current.Status, to),
		)
	}

	var notesArg *string
	if notes != "" {
		notesArg = &notes
	}

	updated, err := s.bookings.UpdateStatus(ctx, current.ID, domain.SourcesOf(to), to, notesArg)
	if err != nil {
		if errors.Is(err, domain.ErrEditConflict) {
			return nil, domain.NewError(
				domain.ErrInvalidState,
				fmt.Sprintf("booking status changed concurrently, cannot move to %s", to),
			)
		}

		return nil, fmt.Errorf("failed to update booking %d to %s: %w", current.ID, to, err)
	}

	if !to.IsActive() {
		err = s.bookings.ReleaseSeats(ctx, current.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to release seats of booking %d: %w", current.ID, err)
		}
	}

	return updated, nil
}

// publish is called after commit. Delivery is best effort.
func (s *Service) publish(ctx context.Context, eventType domain.EventType, booking *domain.Booking) {
	err := s.publisher.Publish(ctx, domain.NewBookingEvent(eventType, booking, s.now()))
	if err != nil {
		s.logger.Error("failed to publish booking event",
			"event", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func validatePage(p domain.Pagination) error {
	if p.Page < 1 {
		return domain.NewError(domain.ErrInvalidRequest, "page must be greater than zero")
	}

	if p.PageSize < 1 || p.PageSize > maxPageSize {
		return domain.NewError(
			domain.ErrInvalidRequest,
			fmt.Sprintf("page size must be between 1 and %d", maxPageSize),
		)
	}

	return nil
}

func contentionToConflict(err error) error {
	if errors.Is(err, domain.ErrLockContention) {
		return domain.NewError(domain.ErrConflict, "booking is being modified concurrently, please retry")
	}

	return err
}

// seatNumbers names the seats whose ids are in subset, or all of them when
// subset is nil.
func seatNumbers(seats []domain.Seat, subset map[int]struct{}) []string {
	names := make([]string, 0, len(seats))

	for _, seat := range seats {
		if subset != nil {
			if _, ok := subset[seat.ID]; !ok {
				continue
			}
		}

		names = append(names, seat.SeatNumber)
	}

	return names
}
