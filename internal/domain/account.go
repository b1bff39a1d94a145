package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

type AccountRepository interface {
	GetById(ctx context.Context, id int) (*Account, error)
}
