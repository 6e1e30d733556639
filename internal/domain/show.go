package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Show struct {
	ID        int
	MovieID   int
	TheaterID int
	ShowDate  time.Time
	ShowTime  string
	BasePrice decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartsAt combines the show date and its wall-clock time in the date's location.
func (s Show) StartsAt() time.Time {
	t, err := time.Parse("15:04:05", s.ShowTime)
	if err != nil {
		t, err = time.Parse("15:04", s.ShowTime)
		if err != nil {
			return s.ShowDate
		}
	}

	y, m, d := s.ShowDate.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, s.ShowDate.Location())
}

type ShowRepository interface {
	GetById(ctx context.Context, id int) (*Show, error)
	// LockById takes the per-show reservation lock for the rest of the surrounding
	// transaction and returns the freshly read show.
	LockById(ctx context.Context, id int) (*Show, error)
}
