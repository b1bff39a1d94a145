package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/moviemate/internal/domain"
)

type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		db: db,
	}
}

func (p *PostgresAccountRepository) GetById(ctx context.Context, id int) (*domain.Account, error) {
	query := `
		SELECT id, first_name, last_name, email, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account

	err := p.db.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &account, nil
}
