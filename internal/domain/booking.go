package domain

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted},
}

// ActiveBookingStatuses are the statuses whose seat assignments count against availability.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}

	return false
}

func (s BookingStatus) IsActive() bool {
	return slices.Contains(ActiveBookingStatuses, s)
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return slices.Contains(bookingTransitions[s], next)
}

// SourcesOf lists every status from which next can be reached.
func SourcesOf(next BookingStatus) []BookingStatus {
	var sources []BookingStatus

	for from, targets := range bookingTransitions {
		if slices.Contains(targets, next) {
			sources = append(sources, from)
		}
	}

	slices.Sort(sources)

	return sources
}

type Booking struct {
	ID          int
	UserID      int
	ShowID      int
	TotalAmount decimal.Decimal
	Status      BookingStatus
	Reference   string
	Notes       string
	Seats       []SeatAssignment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SeatAssignment links one booked seat to its booking. Price is the value frozen
// at booking time and never recomputed.
type SeatAssignment struct {
	BookingID  int
	ShowID     int
	SeatID     int
	SeatNumber string
	Price      decimal.Decimal
	ReleasedAt *time.Time
}

func (b *Booking) OwnedBy(actor Actor) bool {
	return b.UserID == actor.UserID
}

func (b *Booking) SeatIDs() []int {
	ids := make([]int, len(b.Seats))
	for i, s := range b.Seats {
		ids[i] = s.SeatID
	}

	return ids
}

const bookingReferencePrefix = "BK"

// NewBookingReference returns a short human-facing code such as "BK3F9A01C2".
// Uniqueness is not guaranteed; callers retry on ErrDuplicateReference.
func NewBookingReference() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return bookingReferencePrefix + strings.ToUpper(hex[:8])
}

type BookingFilter struct {
	UserID *int
	Status *BookingStatus
	Pagination
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetById(ctx context.Context, id int) (*Booking, error)
	// GetByIdForUpdate reads the booking and locks its row until the surrounding
	// transaction ends.
	GetByIdForUpdate(ctx context.Context, id int) (*Booking, error)
	GetAll(ctx context.Context, filter BookingFilter) ([]Booking, *Metadata, error)
	// GetActiveSeatIdsByShow returns the seats of showID held by an active
	// booking, restricted to seatIDs when it is non-empty.
	GetActiveSeatIdsByShow(ctx context.Context, showID int, seatIDs []int) ([]int, error)
	// UpdateStatus moves the booking to status only if its current status is one
	// of from; otherwise it returns ErrEditConflict.
	UpdateStatus(ctx context.Context, id int, from []BookingStatus, to BookingStatus, notes *string) (*Booking, error)
	ReleaseSeats(ctx context.Context, bookingID int) error
	GetIdsByStatusAndShowStartBefore(ctx context.Context, status BookingStatus, cutoff time.Time, limit int) ([]int, error)
}

// Transactor runs fn inside one storage transaction. Repository calls made with
// the context passed to fn join that transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
