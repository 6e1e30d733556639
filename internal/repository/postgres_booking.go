package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create inserts the booking and its seat assignments atomically. When a seat
// is already held by another active booking the partial unique index on
// seat_assignments rejects the insert and ErrSeatAlreadyAssigned is returned.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return withTx(ctx, p.db, func(ctx context.Context) error {
		q := conn(ctx, p.db)

		query := `
			INSERT INTO bookings (user_id, show_id, total_amount, status, reference, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`

		err := q.QueryRow(
			ctx,
			query,
			booking.UserID,
			booking.ShowID,
			booking.TotalAmount,
			booking.Status,
			booking.Reference,
			booking.Notes,
		).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
		if err != nil {
			return translateError(err)
		}

		batch := &pgx.Batch{}
		for i := range booking.Seats {
			booking.Seats[i].BookingID = booking.ID
			booking.Seats[i].ShowID = booking.ShowID

			batch.Queue(`
				INSERT INTO seat_assignments (booking_id, show_id, seat_id, price)
				VALUES ($1, $2, $3, $4)`,
				booking.ID,
				booking.ShowID,
				booking.Seats[i].SeatID,
				booking.Seats[i].Price,
			)
		}

		err = q.SendBatch(ctx, batch).Close()
		if err != nil {
			return translateError(err)
		}

		return nil
	})
}

const selectBooking = `
	SELECT id, user_id, show_id, total_amount, status, reference, notes, created_at, updated_at
	FROM bookings
`

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	return p.getOne(ctx, selectBooking+"WHERE id = $1", id)
}

func (p *PostgresBookingRepository) GetByIdForUpdate(ctx context.Context, id int) (*domain.Booking, error) {
	return p.getOne(ctx, selectBooking+"WHERE id = $1 FOR UPDATE", id)
}

func (p *PostgresBookingRepository) getOne(ctx context.Context, query string, id int) (*domain.Booking, error) {
	q := conn(ctx, p.db)

	booking, err := scanBooking(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}

	seats, err := p.getSeats(ctx, []int{booking.ID})
	if err != nil {
		return nil, err
	}

	booking.Seats = seats[booking.ID]

	return booking, nil
}

func (p *PostgresBookingRepository) GetAll(
	ctx context.Context,
	filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id, user_id, show_id, total_amount, status, reference, notes, created_at, updated_at
		FROM bookings
		WHERE ($1::bigint IS NULL OR user_id = $1)
		AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := conn(ctx, p.db).Query(
		ctx,
		query,
		filter.UserID,
		filter.Status,
		filter.Limit(),
		filter.Offset(),
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&totalRecords,
			&booking.ID,
			&booking.UserID,
			&booking.ShowID,
			&booking.TotalAmount,
			&booking.Status,
			&booking.Reference,
			&booking.Notes,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	ids := make([]int, len(bookings))
	for i := range bookings {
		ids[i] = bookings[i].ID
	}

	if len(ids) > 0 {
		seats, err := p.getSeats(ctx, ids)
		if err != nil {
			return nil, nil, err
		}

		for i := range bookings {
			bookings[i].Seats = seats[bookings[i].ID]
		}
	}

	metadata := domain.NewMetadata(totalRecords, filter.Page, filter.PageSize)

	return bookings, metadata, nil
}

// GetActiveSeatIdsByShow derives occupancy from booking status, which is the
// source of truth. released_at mirrors it for the partial unique index.
func (p *PostgresBookingRepository) GetActiveSeatIdsByShow(
	ctx context.Context,
	showID int,
	seatIDs []int) ([]int, error) {

	query := `
		SELECT sa.seat_id
		FROM seat_assignments sa
		JOIN bookings b ON b.id = sa.booking_id
		WHERE sa.show_id = $1
		AND b.status = ANY($2)
		AND (cardinality($3::bigint[]) = 0 OR sa.seat_id = ANY($3))
		ORDER BY sa.seat_id
	`

	if seatIDs == nil {
		seatIDs = []int{}
	}

	rows, err := conn(ctx, p.db).Query(ctx, query, showID, statusStrings(domain.ActiveBookingStatuses), seatIDs)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (p *PostgresBookingRepository) UpdateStatus(
	ctx context.Context,
	id int,
	from []domain.BookingStatus,
	to domain.BookingStatus,
	notes *string) (*domain.Booking, error) {

	query := `
		UPDATE bookings
		SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3 AND status = ANY($4)
		RETURNING id, user_id, show_id, total_amount, status, reference, notes, created_at, updated_at
	`

	q := conn(ctx, p.db)

	booking, err := scanBooking(q.QueryRow(ctx, query, to, notes, id, statusStrings(from)))
	if err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrEditConflict
		}

		return nil, err
	}

	seats, err := p.getSeats(ctx, []int{booking.ID})
	if err != nil {
		return nil, err
	}

	booking.Seats = seats[booking.ID]

	return booking, nil
}

func (p *PostgresBookingRepository) ReleaseSeats(ctx context.Context, bookingID int) error {
	query := `
		UPDATE seat_assignments
		SET released_at = NOW()
		WHERE booking_id = $1 AND released_at IS NULL
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, bookingID)
	return err
}

// GetIdsByStatusAndShowStartBefore compares against the show's wall-clock
// start, so cutoff is interpreted in the database session time zone.
func (p *PostgresBookingRepository) GetIdsByStatusAndShowStartBefore(
	ctx context.Context,
	status domain.BookingStatus,
	cutoff time.Time,
	limit int) ([]int, error) {

	query := `
		SELECT b.id
		FROM bookings b
		JOIN shows s ON s.id = b.show_id
		WHERE b.status = $1
		AND (s.show_date + s.show_time) < $2::timestamptz::timestamp
		ORDER BY b.id
		LIMIT $3
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, status, cutoff, limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (p *PostgresBookingRepository) getSeats(
	ctx context.Context,
	bookingIDs []int) (map[int][]domain.SeatAssignment, error) {

	query := `
		SELECT sa.booking_id, sa.show_id, sa.seat_id, s.seat_number, sa.price, sa.released_at
		FROM seat_assignments sa
		JOIN seats s ON s.id = sa.seat_id
		WHERE sa.booking_id = ANY($1)
		ORDER BY sa.booking_id, s.seat_row, length(s.seat_number), s.seat_number
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make(map[int][]domain.SeatAssignment, len(bookingIDs))

	for rows.Next() {
		var seat domain.SeatAssignment

		err := rows.Scan(
			&seat.BookingID,
			&seat.ShowID,
			&seat.SeatID,
			&seat.SeatNumber,
			&seat.Price,
			&seat.ReleasedAt,
		)
		if err != nil {
			return nil, err
		}

		seats[seat.BookingID] = append(seats[seat.BookingID], seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowID,
		&booking.TotalAmount,
		&booking.Status,
		&booking.Reference,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	s := make([]string, len(statuses))
	for i, status := range statuses {
		s[i] = string(status)
	}

	return s
}
