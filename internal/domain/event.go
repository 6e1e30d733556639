package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingCompleted EventType = "booking.completed"
)

// BookingEvent describes a committed booking lifecycle change.
type BookingEvent struct {
	Type        EventType       `json:"type"`
	BookingID   int             `json:"bookingId"`
	Reference   string          `json:"reference"`
	UserID      int             `json:"userId"`
	ShowID      int             `json:"showId"`
	Status      BookingStatus   `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	SeatIDs     []int           `json:"seatIds"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

func NewBookingEvent(eventType EventType, booking *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		UserID:      booking.UserID,
		ShowID:      booking.ShowID,
		Status:      booking.Status,
		TotalAmount: booking.TotalAmount,
		SeatIDs:     booking.SeatIDs(),
		OccurredAt:  at,
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}
