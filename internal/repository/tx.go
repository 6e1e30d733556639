package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

const (
	bookingReferenceConstraint = "bookings_reference_key"
	activeSeatConstraint       = "seat_assignments_active_seat_idx"
)

// activeSeatDetail matches the detail Postgres reports for a violation of
// activeSeatConstraint.
var activeSeatDetail = regexp.MustCompile(`^Key \(show_id, seat_id\)=\((\d+), (\d+)\) already exists`)

type txKey struct{}

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// conn returns the transaction bound to ctx, or the pool when there is none.
func conn(ctx context.Context, db *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}

	return db
}

type PostgresTransactor struct {
	db *pgxpool.Pool
}

func NewPostgresTransactor(db *pgxpool.Pool) *PostgresTransactor {
	return &PostgresTransactor{
		db: db,
	}
}

// WithTx runs fn in a transaction. A ctx that already carries a transaction is
// reused, so nested calls join the outer unit of work.
func (p *PostgresTransactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, p.db, fn)
}

func withTx(ctx context.Context, db *pgxpool.Pool, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	return runInTx(ctx, db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return translateError(err)
	}

	err = fn(tx)
	if err == nil {
		return translateError(tx.Commit(ctx))
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

// translateError maps the Postgres errors the booking core reacts to onto
// domain errors and leaves everything else untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case bookingReferenceConstraint:
			return domain.ErrDuplicateReference
		case activeSeatConstraint:
			return seatAssignedError(pgErr.Detail)
		}
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
		return fmt.Errorf("%w: %s", domain.ErrLockContention, pgErr.Message)
	}

	return err
}

func seatAssignedError(detail string) error {
	m := activeSeatDetail.FindStringSubmatch(detail)
	if m == nil {
		return domain.ErrSeatAlreadyAssigned
	}

	showID, _ := strconv.Atoi(m[1])
	seatID, _ := strconv.Atoi(m[2])

	return &domain.SeatAssignedError{ShowID: showID, SeatID: seatID}
}
