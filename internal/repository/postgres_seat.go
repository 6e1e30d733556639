package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetActiveByTheater(ctx context.Context, theaterID int) ([]domain.Seat, error) {
	query := `
		SELECT id, theater_id, seat_number, seat_row, seat_type, price_multiplier, is_active
		FROM seats
		WHERE theater_id = $1 AND is_active
		ORDER BY seat_row, length(seat_number), seat_number
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, theaterID)
	if err != nil {
		return nil, err
	}

	return scanSeats(rows)
}

func (p *PostgresSeatRepository) GetByIds(ctx context.Context, seatIDs []int) ([]domain.Seat, error) {
	query := `
		SELECT id, theater_id, seat_number, seat_row, seat_type, price_multiplier, is_active
		FROM seats
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, seatIDs)
	if err != nil {
		return nil, err
	}

	return scanSeats(rows)
}

func scanSeats(rows pgx.Rows) ([]domain.Seat, error) {
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(
			&seat.ID,
			&seat.TheaterID,
			&seat.SeatNumber,
			&seat.Row,
			&seat.Type,
			&seat.PriceMultiplier,
			&seat.IsActive,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
