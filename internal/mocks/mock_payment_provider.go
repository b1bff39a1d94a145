package mocks

import (
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateTopUpSession(
	account *domain.Account,
	amount decimal.Decimal) (*stripe.CheckoutSession, error) {

	args := m.Called(account, amount)
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}
