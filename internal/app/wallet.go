package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const maxWebhookBodyBytes = 65536

func (app *Application) CreateTopUpCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var input api.TopUpRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	accountId := app.contextGetAccountId(r)

	account, err := app.accountRepo.GetById(r.Context(), accountId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, domain.ErrAccountNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	checkoutSession, err := app.paymentProvider.CreateTopUpSession(account, input.Amount)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	payment := &domain.Payment{
		AccountID:         accountId,
		CheckoutSessionId: checkoutSession.ID,
		Amount:            input.Amount,
		Currency:          domain.CurrencyEUR,
		Status:            domain.PaymentStatusPending,
	}

	err = app.paymentRepo.Create(r.Context(), payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("top-up checkout session created",
		"payment_id", payment.ID,
		"amount", input.Amount.StringFixed(2),
	)

	resp := api.CheckoutSessionResponse{
		RedirectUrl: checkoutSession.URL,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// StripeWebhook credits wallets for paid checkout sessions and cancels
// expired ones. Stripe redelivers on any non-2xx answer, so only failures
// that may go away on their own are reported as errors.
func (app *Application) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		r.Header.Get("Stripe-Signature"),
		app.config.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		logger.Warn("webhook signature verification failed", "error", err)
		app.badRequestResponse(w, r, errors.New(ErrInvalidStripeSign))
		return
	}

	logger = logger.With("stripe_event_id", event.ID, "stripe_event_type", string(event.Type))

	var session stripe.CheckoutSession

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		err = json.Unmarshal(event.Data.Raw, &session)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			logger.Info("checkout session not paid yet", "checkout_session_id", session.ID)
			break
		}

		result, err := app.bookings.CompleteTopUp(r.Context(), session.ID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrPaymentNotFound):
				logger.Warn("webhook for unknown checkout session", "checkout_session_id", session.ID)
			default:
				app.bookingErrorResponse(w, r, err)
				return
			}

			break
		}

		logger.Info("wallet top-up processed",
			"payment_id", result.PaymentID,
			"account_id", result.AccountID,
			"already_processed", result.AlreadyProcessed,
		)

	case stripe.EventTypeCheckoutSessionExpired, stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		err = json.Unmarshal(event.Data.Raw, &session)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		err = app.paymentRepo.UpdateStatus(r.Context(), session.ID, domain.PaymentStatusCanceled, string(event.Type))
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		logger.Info("top-up payment canceled", "checkout_session_id", session.ID)

	default:
		logger.Debug("ignoring webhook event")
	}

	w.WriteHeader(http.StatusOK)
}
