package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/moviemate/internal/domain"
)

type PostgresNotificationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresNotificationRepository(db *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{
		db: db,
	}
}

func (p *PostgresNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (account_id, purpose, message, method)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sent_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		notification.AccountID,
		notification.Purpose,
		notification.Message,
		notification.Method,
	).Scan(&notification.ID, &notification.SentAt)
}

func (p *PostgresNotificationRepository) GetLatestByAccountId(
	ctx context.Context,
	accountId int,
	limit int) ([]domain.Notification, error) {

	query := `
		SELECT id, account_id, purpose, message, method, sent_at
		FROM notifications
		WHERE account_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT $2
	`

	rows, err := p.db.Query(ctx, query, accountId, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)

	for rows.Next() {
		var notification domain.Notification

		err := rows.Scan(
			&notification.ID,
			&notification.AccountID,
			&notification.Purpose,
			&notification.Message,
			&notification.Method,
			&notification.SentAt,
		)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, notification)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (p *PostgresNotificationRepository) Delete(ctx context.Context, id, accountId int) error {
	query := `DELETE FROM notifications WHERE id = $1 AND account_id = $2`

	tag, err := p.db.Exec(ctx, query, id, accountId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresNotificationRepository) DeleteAllByAccountId(ctx context.Context, accountId int) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM notifications WHERE account_id = $1`, accountId)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
