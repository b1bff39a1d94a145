package domain

import (
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

type PaymentProvider interface {
	CreateTopUpSession(account *Account, amount decimal.Decimal) (*stripe.CheckoutSession, error)
}
