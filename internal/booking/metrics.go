package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/movie-ticket-booking/internal/booking"

// Instrument names exported so telemetry can shape them with views.
const (
	MetricBookingsCreated     = "booking.created"
	MetricSeatConflicts       = "booking.seat_conflicts"
	MetricTransitions         = "booking.transitions"
	MetricPayments            = "booking.payments"
	MetricReservationDuration = "booking.reservation.duration"
)

type metrics struct {
	bookings    metric.Int64Counter
	conflicts   metric.Int64Counter
	transitions metric.Int64Counter
	payments    metric.Int64Counter
	reservation metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	var m metrics
	var errs []error

	counter := func(name, description string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(description))
		if err != nil {
			errs = append(errs, fmt.Errorf("instrument %s: %w", name, err))
		}
		return c
	}

	m.bookings = counter(MetricBookingsCreated, "Bookings created")
	m.conflicts = counter(MetricSeatConflicts, "Reservation attempts rejected because a seat was taken")
	m.transitions = counter(MetricTransitions, "Booking status transitions")
	m.payments = counter(MetricPayments, "Completed payments")

	reservation, err := meter.Float64Histogram(
		MetricReservationDuration,
		metric.WithDescription("Time spent claiming seats for a booking"),
		metric.WithUnit("s"),
	)
	if err != nil {
		errs = append(errs, fmt.Errorf("instrument %s: %w", MetricReservationDuration, err))
	}
	m.reservation = reservation

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &m, nil
}

func (m *metrics) transition(ctx context.Context, to string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", to)))
}

func (m *metrics) reserved(ctx context.Context, start time.Time, outcome string) {
	m.reservation.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
}
