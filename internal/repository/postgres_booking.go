package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/moviemate/internal/domain"
)

const topMoviesLimit = 5

const bookingDetailSelect = `
	b.id,
	b.showtime_id,
	b.account_id,
	b.tickets,
	b.total_price,
	b.payment_method,
	b.payment_date,
	b.is_active,
	b.created_at,
	b.cancelled_at,
	a.email,
	m.title,
	t.name,
	t.city,
	f.name,
	s.start_time
	FROM bookings b
	JOIN accounts a ON b.account_id = a.id
	JOIN showtimes s ON b.showtime_id = s.id
	JOIN movies m ON s.movie_id = m.id
	JOIN theaters t ON s.theater_id = t.id
	JOIN formats f ON s.format_id = f.id
`

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.BookingDetail, error) {
	query := `SELECT ` + bookingDetailSelect + ` WHERE b.id = $1`

	var booking domain.BookingDetail

	err := p.db.QueryRow(ctx, query, id).Scan(bookingDetailDest(&booking)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetByAccountId(
	ctx context.Context,
	accountId int,
	pagination domain.Pagination) ([]domain.BookingDetail, *domain.Metadata, error) {

	query := `SELECT COUNT(*) OVER(), ` + bookingDetailSelect + `
		WHERE b.account_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, accountId, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings, totalRecords, err := scanBookingDetails(rows)
	if err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) Search(
	ctx context.Context,
	filter domain.BookingFilter) ([]domain.BookingDetail, *domain.Metadata, error) {

	query := `SELECT COUNT(*) OVER(), ` + bookingDetailSelect + `
		WHERE ($1::text = 'all'
			OR ($1::text = 'active' AND b.is_active)
			OR ($1::text = 'cancelled' AND NOT b.is_active))
		AND ($2::text = ''
			OR m.title ILIKE '%' || $2::text || '%'
			OR a.email ILIKE '%' || $2::text || '%')
		AND ($5::timestamptz IS NULL OR b.created_at >= $5::timestamptz)
		AND ($6::timestamptz IS NULL OR b.created_at < $6::timestamptz)
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $3 OFFSET $4
	`

	status := filter.Status
	if status == "" {
		status = domain.BookingStatusAll
	}

	rows, err := p.db.Query(
		ctx,
		query,
		string(status),
		filter.Term,
		filter.Limit(),
		filter.Offset(),
		filter.From,
		filter.To,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings, totalRecords, err := scanBookingDetails(rows)
	if err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filter.Page, filter.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) Stats(ctx context.Context, since time.Time) (*domain.BookingStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE NOT is_active),
			COALESCE(SUM(total_price) FILTER (WHERE is_active), 0),
			COUNT(*) FILTER (WHERE created_at >= $1)
		FROM bookings
	`

	var stats domain.BookingStats

	err := p.db.QueryRow(ctx, query, since).Scan(
		&stats.TotalBookings,
		&stats.ActiveBookings,
		&stats.CancelledBookings,
		&stats.TotalRevenue,
		&stats.TodayBookings,
	)
	if err != nil {
		return nil, err
	}

	query = `
		SELECT m.title, COUNT(b.id) AS booking_count
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		WHERE b.is_active
		GROUP BY m.id, m.title
		ORDER BY booking_count DESC, m.title
		LIMIT $1
	`

	rows, err := p.db.Query(ctx, query, topMoviesLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.TopMovies = make([]domain.MovieBookingCount, 0, topMoviesLimit)

	for rows.Next() {
		var movie domain.MovieBookingCount

		err := rows.Scan(&movie.MovieTitle, &movie.BookingCount)
		if err != nil {
			return nil, err
		}

		stats.TopMovies = append(stats.TopMovies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}

func scanBookingDetails(rows pgx.Rows) ([]domain.BookingDetail, int, error) {
	bookings := make([]domain.BookingDetail, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.BookingDetail

		dest := append([]any{&totalRecords}, bookingDetailDest(&booking)...)

		err := rows.Scan(dest...)
		if err != nil {
			return nil, 0, err
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return bookings, totalRecords, nil
}

func bookingDetailDest(b *domain.BookingDetail) []any {
	return []any{
		&b.ID,
		&b.ShowtimeID,
		&b.AccountID,
		&b.TicketCount,
		&b.TotalPrice,
		&b.PaymentMethod,
		&b.PaymentDate,
		&b.IsActive,
		&b.CreatedAt,
		&b.CancelledAt,
		&b.AccountEmail,
		&b.MovieTitle,
		&b.TheaterName,
		&b.TheaterCity,
		&b.Format,
		&b.StartTime,
	}
}
