package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	otherErr := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: nil,
		},
		{
			name: "no rows becomes record not found",
			err:  fmt.Errorf("scan: %w", pgx.ErrNoRows),
			want: domain.ErrRecordNotFound,
		},
		{
			name: "reference collision",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: bookingReferenceConstraint},
			want: domain.ErrDuplicateReference,
		},
		{
			name: "active seat collision",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: activeSeatConstraint},
			want: domain.ErrSeatAlreadyAssigned,
		},
		{
			name: "serialization failure",
			err:  &pgconn.PgError{Code: pgerrcode.SerializationFailure},
			want: domain.ErrLockContention,
		},
		{
			name: "deadlock",
			err:  &pgconn.PgError{Code: pgerrcode.DeadlockDetected},
			want: domain.ErrLockContention,
		},
		{
			name: "lock not available",
			err:  &pgconn.PgError{Code: pgerrcode.LockNotAvailable},
			want: domain.ErrLockContention,
		},
		{
			name: "unrelated error passes through",
			err:  otherErr,
			want: otherErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)

			if tt.want == nil {
				assert.NoError(t, got)
				return
			}

			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateErrorKeepsUnknownUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "payments_booking_id_key"}

	got := translateError(pgErr)

	assert.Same(t, pgErr, got)
}

func TestTranslateErrorNamesAssignedSeat(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		want   *domain.SeatAssignedError
	}{
		{
			name:   "detail names the seat",
			detail: "Key (show_id, seat_id)=(3, 42) already exists.",
			want:   &domain.SeatAssignedError{ShowID: 3, SeatID: 42},
		},
		{
			name:   "detail hidden by the server",
			detail: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(&pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: activeSeatConstraint,
				Detail:         tt.detail,
			})

			assert.ErrorIs(t, got, domain.ErrSeatAlreadyAssigned)

			var assigned *domain.SeatAssignedError
			if tt.want == nil {
				assert.False(t, errors.As(got, &assigned))
				return
			}

			if assert.True(t, errors.As(got, &assigned)) {
				assert.Equal(t, tt.want, assigned)
			}
		})
	}
}
