package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/moviemate/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT
			s.id,
			s.movie_id,
			s.theater_id,
			s.format_id,
			m.title,
			t.name,
			t.city,
			f.name,
			s.start_time,
			s.price,
			s.capacity,
			s.booked_seats,
			s.booking_enabled,
			s.is_active,
			s.created_at
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		JOIN theaters t ON s.theater_id = t.id
		JOIN formats f ON s.format_id = f.id
		WHERE s.id = $1
	`

	showtime, err := scanShowtime(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return showtime, nil
}

// Create inserts a showtime with an empty seat counter. Catalog references
// that do not exist surface as domain.ErrRecordNotFound.
func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, theater_id, format_id, start_time, price, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, booked_seats, booking_enabled, is_active, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		showtime.MovieID,
		showtime.TheaterID,
		showtime.FormatID,
		showtime.StartTime,
		showtime.Price,
		showtime.Capacity,
	).Scan(
		&showtime.ID,
		&showtime.BookedSeats,
		&showtime.BookingEnabled,
		&showtime.IsActive,
		&showtime.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresShowtimeRepository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE showtimes
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active
	`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanShowtime(row pgx.Row) (*domain.Showtime, error) {
	var showtime domain.Showtime

	err := row.Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterID,
		&showtime.FormatID,
		&showtime.MovieTitle,
		&showtime.TheaterName,
		&showtime.TheaterCity,
		&showtime.Format,
		&showtime.StartTime,
		&showtime.Price,
		&showtime.Capacity,
		&showtime.BookedSeats,
		&showtime.BookingEnabled,
		&showtime.IsActive,
		&showtime.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &showtime, nil
}
