package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type SeatType string

const (
	SeatTypeRegular SeatType = "regular"
	SeatTypePremium SeatType = "premium"
	SeatTypeVIP     SeatType = "vip"
)

type Seat struct {
	ID              int
	TheaterID       int
	SeatNumber      string
	Row             string
	Type            SeatType
	PriceMultiplier decimal.Decimal
	IsActive        bool
}

// SeatAvailability is one entry of a show's seat map.
type SeatAvailability struct {
	Seat
	Available bool
	Price     decimal.Decimal
}

// SeatMap is the seat layout of a show's theater with live availability.
type SeatMap struct {
	Show  Show
	Seats []SeatAvailability
}

func (m *SeatMap) AvailableCount() int {
	n := 0
	for _, s := range m.Seats {
		if s.Available {
			n++
		}
	}

	return n
}

type SeatRepository interface {
	GetActiveByTheater(ctx context.Context, theaterID int) ([]Seat, error)
	GetByIds(ctx context.Context, seatIDs []int) ([]Seat, error)
}
