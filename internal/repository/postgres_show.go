package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

const selectShow = `
	SELECT
		id,
		movie_id,
		theater_id,
		show_date,
		to_char(show_time, 'HH24:MI:SS'),
		base_price,
		is_active,
		created_at,
		updated_at
	FROM shows
	WHERE id = $1
`

func (p *PostgresShowRepository) GetById(ctx context.Context, id int) (*domain.Show, error) {
	return p.get(ctx, selectShow, id)
}

// LockById holds a row lock on the show for the rest of the transaction. Every
// reservation for the show takes it before checking availability, so
// check-and-claim sequences on the same show run one at a time while other
// shows are unaffected. FOR NO KEY UPDATE does not block plain readers or
// foreign-key checks from inserted bookings.
func (p *PostgresShowRepository) LockById(ctx context.Context, id int) (*domain.Show, error) {
	return p.get(ctx, selectShow+" FOR NO KEY UPDATE", id)
}

func (p *PostgresShowRepository) get(ctx context.Context, query string, id int) (*domain.Show, error) {
	var show domain.Show

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.MovieID,
		&show.TheaterID,
		&show.ShowDate,
		&show.ShowTime,
		&show.BasePrice,
		&show.IsActive,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &show, nil
}
