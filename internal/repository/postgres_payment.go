package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

const selectPayment = `
	SELECT
		p.id, p.booking_id, b.user_id, p.method, p.transaction_id, p.amount, p.currency,
		p.status, p.paid_at, p.created_at, p.updated_at
	FROM payments p
	JOIN bookings b ON b.id = p.booking_id
`

func (p *PostgresPaymentRepository) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	return p.getOne(ctx, selectPayment+"WHERE p.id = $1", id)
}

func (p *PostgresPaymentRepository) GetByBookingId(ctx context.Context, bookingID int) (*domain.Payment, error) {
	return p.getOne(ctx, selectPayment+"WHERE p.booking_id = $1", bookingID)
}

func (p *PostgresPaymentRepository) getOne(ctx context.Context, query string, arg int) (*domain.Payment, error) {
	payment, err := scanPayment(conn(ctx, p.db).QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translateError(err)
	}

	return payment, nil
}

// GetAll pages through payments, newest first, narrowed to the owner of the
// paid booking when filter.UserID is set.
func (p *PostgresPaymentRepository) GetAll(
	ctx context.Context,
	filter domain.PaymentFilter) ([]domain.Payment, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			p.id, p.booking_id, b.user_id, p.method, p.transaction_id, p.amount, p.currency,
			p.status, p.paid_at, p.created_at, p.updated_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE ($1::bigint IS NULL OR b.user_id = $1)
		AND ($2::text IS NULL OR p.status = $2)
		ORDER BY p.created_at DESC, p.id DESC
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

	payments := make([]domain.Payment, 0)
	totalRecords := 0

	for rows.Next() {
		var payment domain.Payment

		err := rows.Scan(
			&totalRecords,
			&payment.ID,
			&payment.BookingID,
			&payment.UserID,
			&payment.Method,
			&payment.TransactionID,
			&payment.Amount,
			&payment.Currency,
			&payment.Status,
			&payment.PaidAt,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return payments, domain.NewMetadata(totalRecords, filter.Page, filter.PageSize), nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var payment domain.Payment

	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.UserID,
		&payment.Method,
		&payment.TransactionID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.PaidAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (p *PostgresPaymentRepository) Upsert(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			booking_id,
			method,
			transaction_id,
			amount,
			currency,
			status,
			paid_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (booking_id) DO UPDATE SET
			method = EXCLUDED.method,
			transaction_id = EXCLUDED.transaction_id,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			paid_at = EXCLUDED.paid_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := conn(ctx, p.db).QueryRow(
		ctx,
		query,
		payment.BookingID,
		payment.Method,
		payment.TransactionID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.PaidAt,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)

	return translateError(err)
}

// UpdateStatus is a no-op when the booking has no payment.
func (p *PostgresPaymentRepository) UpdateStatus(
	ctx context.Context,
	bookingID int,
	status domain.PaymentStatus) error {

	query := `UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE booking_id = $2
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, status, bookingID)
	return err
}
