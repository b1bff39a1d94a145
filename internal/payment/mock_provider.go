package payment

import (
	"fmt"
	"sync/atomic"

	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

// MockPaymentProvider returns locally generated checkout sessions so flows
// can run without reaching Stripe.
type MockPaymentProvider struct {
	seq atomic.Int64
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateTopUpSession(
	account *domain.Account,
	amount decimal.Decimal) (*stripe.CheckoutSession, error) {

	id := fmt.Sprintf("cs_test_%d_%d", account.ID, m.seq.Add(1))

	return &stripe.CheckoutSession{
		ID:  id,
		URL: "https://checkout.stripe.test/" + id,
	}, nil
}
