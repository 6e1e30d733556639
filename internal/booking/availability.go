package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

// AvailabilityIndex answers which seats of a show are free. It always reads
// the ledger directly; there is no cache to go stale.
type AvailabilityIndex struct {
	shows    domain.ShowRepository
	seats    domain.SeatRepository
	bookings domain.BookingRepository
}

func NewAvailabilityIndex(
	shows domain.ShowRepository,
	seats domain.SeatRepository,
	bookings domain.BookingRepository) *AvailabilityIndex {

	return &AvailabilityIndex{
		shows:    shows,
		seats:    seats,
		bookings: bookings,
	}
}

// AvailableSeats returns the seat map of the show's theater: every active seat
// with its computed price and whether an active booking already holds it.
func (a *AvailabilityIndex) AvailableSeats(ctx context.Context, showID int) (*domain.SeatMap, error) {
	show, err := a.activeShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	seats, err := a.seats.GetActiveByTheater(ctx, show.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seats of theater %d: %w", show.TheaterID, err)
	}

	taken, err := a.takenSeats(ctx, show.ID, nil)
	if err != nil {
		return nil, err
	}

	result := make([]domain.SeatAvailability, 0, len(seats))
	for _, seat := range seats {
		_, isTaken := taken[seat.ID]

		result = append(result, domain.SeatAvailability{
			Seat:      seat,
			Available: !isTaken,
			Price:     domain.SeatPrice(show.BasePrice, seat.PriceMultiplier),
		})
	}

	return &domain.SeatMap{Show: *show, Seats: result}, nil
}

// IsSeatAvailable reports false for seats that are taken, inactive or not part
// of the show's theater.
func (a *AvailabilityIndex) IsSeatAvailable(ctx context.Context, showID, seatID int) (bool, error) {
	show, err := a.activeShow(ctx, showID)
	if err != nil {
		return false, err
	}

	seats, err := a.seats.GetByIds(ctx, []int{seatID})
	if err != nil {
		return false, fmt.Errorf("failed to fetch seat %d: %w", seatID, err)
	}

	if len(seats) == 0 || !seats[0].IsActive || seats[0].TheaterID != show.TheaterID {
		return false, nil
	}

	taken, err := a.takenSeats(ctx, show.ID, []int{seatID})
	if err != nil {
		return false, err
	}

	return len(taken) == 0, nil
}

func (a *AvailabilityIndex) activeShow(ctx context.Context, showID int) (*domain.Show, error) {
	show, err := a.shows.GetById(ctx, showID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "show not found")
		}

		return nil, fmt.Errorf("failed to fetch show %d: %w", showID, err)
	}

	if !show.IsActive {
		return nil, domain.NewError(domain.ErrNotFound, "show not found")
	}

	return show, nil
}

func (a *AvailabilityIndex) takenSeats(ctx context.Context, showID int, seatIDs []int) (map[int]struct{}, error) {
	ids, err := a.bookings.GetActiveSeatIdsByShow(ctx, showID, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked seats of show %d: %w", showID, err)
	}

	taken := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		taken[id] = struct{}{}
	}

	return taken, nil
}
