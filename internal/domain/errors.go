package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Repository-level errors.
var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrEditConflict        = errors.New("edit conflict")
	ErrDuplicateReference  = errors.New("booking reference already exists")
	ErrSeatAlreadyAssigned = errors.New("seat(s) are already reserved")
	ErrLockContention      = errors.New("lock contention")
)

// SeatAssignedError names the seat whose active claim already exists.
type SeatAssignedError struct {
	ShowID int
	SeatID int
}

func (e *SeatAssignedError) Error() string {
	return fmt.Sprintf("seat %d of show %d is already reserved", e.SeatID, e.ShowID)
}

func (e *SeatAssignedError) Unwrap() error {
	return ErrSeatAlreadyAssigned
}

// Error kinds surfaced by the booking core.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrConflict       = errors.New("conflict")
	ErrInvalidState   = errors.New("invalid state")
	ErrForbidden      = errors.New("forbidden")
)

// BookingError is a failure of a core operation. It unwraps to its Kind, so
// callers match it with errors.Is(err, ErrConflict) and friends.
type BookingError struct {
	Kind    error
	Message string
	// Seats names the offending seats, if any.
	Seats []string
}

func (e *BookingError) Error() string {
	if len(e.Seats) == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Seats, ", "))
}

func (e *BookingError) Unwrap() error {
	return e.Kind
}

func NewError(kind error, message string, seats ...string) *BookingError {
	return &BookingError{Kind: kind, Message: message, Seats: seats}
}

// IsRetryable reports whether err may succeed when retried with the same input.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
