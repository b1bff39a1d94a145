package payment

import (
	"strconv"

	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type StripePaymentProvider struct {
	failureUrl string
	successUrl string
}

func NewStripePaymentProvider(failureUrl, successUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl: failureUrl,
		successUrl: successUrl,
	}
}

// CreateTopUpSession opens a one-item checkout for adding amount to the
// account's wallet.
func (s *StripePaymentProvider) CreateTopUpSession(
	account *domain.Account,
	amount decimal.Decimal) (*stripe.CheckoutSession, error) {

	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyEUR)),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("MovieMate wallet top-up"),
						Description: stripe.String("€" + amount.StringFixed(2) + " added to your wallet balance"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successUrl),
		CancelURL:  stripe.String(s.failureUrl),
		Metadata: map[string]string{
			"account_id": strconv.Itoa(account.ID),
			"amount":     amount.StringFixed(2),
		},
		CustomerEmail:     stripe.String(account.Email),
		ClientReferenceID: stripe.String(strconv.Itoa(account.ID)),
	}

	return session.New(params)
}
