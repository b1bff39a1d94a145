package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/moviemate/api"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	maxIdempotencyKeyLen = 128
	idempotencyPending   = "pending"
)

type idempotentResponse struct {
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
	RequestHash string          `json:"requestHash"`
}

func idempotencyKey(params api.CreateBookingParams) (string, error) {
	if params.IdempotencyKey == nil {
		return "", nil
	}

	key := *params.IdempotencyKey
	if len(key) > maxIdempotencyKeyLen {
		return "", fmt.Errorf("%s must be at most %d characters", idempotencyKeyHeader, maxIdempotencyKeyLen)
	}

	return key, nil
}

// fingerprintRequest hashes the decoded request, so whitespace and key order
// of the original body do not make a retry look like a different request.
func fingerprintRequest(input any) (string, error) {
	js, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(js)

	return hex.EncodeToString(sum[:]), nil
}

// keys are scoped per account so two callers can never collide
func idempotencyCacheKey(accountId int, key string) string {
	return fmt.Sprintf("idempotency:booking:%d:%s", accountId, key)
}

// claimIdempotencyKey marks key as in flight. When the key was already used
// and finished, the remembered response is returned instead. claimed is false
// while another request still holds the key.
func (app *Application) claimIdempotencyKey(
	ctx context.Context,
	key string) (replay *idempotentResponse, claimed bool, err error) {

	ok, err := app.redis.SetNX(ctx, key, idempotencyPending, app.config.Booking.IdempotencyTTL).Result()
	if err != nil {
		return nil, false, err
	}

	if ok {
		return nil, true, nil
	}

	val, err := app.redis.Get(ctx, key).Result()
	if err != nil {
		// the holder released the key in between, report it as busy
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if val == idempotencyPending {
		return nil, false, nil
	}

	var resp idempotentResponse

	err = json.Unmarshal([]byte(val), &resp)
	if err != nil {
		return nil, false, err
	}

	return &resp, false, nil
}

// storeIdempotentResponse remembers a committed response. If that fails the
// key stays pending until it expires, so the booking is never repeated.
func (app *Application) storeIdempotentResponse(r *http.Request, key, requestHash string, status int, body any) {
	logger := app.contextGetLogger(r)

	js, err := json.Marshal(body)
	if err != nil {
		logger.Error("failed to encode idempotent response", "error", err)
		return
	}

	value, err := json.Marshal(idempotentResponse{Status: status, Body: js, RequestHash: requestHash})
	if err != nil {
		logger.Error("failed to encode idempotent response", "error", err)
		return
	}

	// the booking is committed even when the client has gone away
	err = app.redis.Set(context.WithoutCancel(r.Context()), key, value, app.config.Booking.IdempotencyTTL).Err()
	if err != nil {
		logger.Error("failed to store idempotent response", "key", key, "error", err)
	}
}

func (app *Application) releaseIdempotencyKey(r *http.Request, key string) {
	// the request context may already be cancelled
	err := app.redis.Del(context.WithoutCancel(r.Context()), key).Err()
	if err != nil {
		app.contextGetLogger(r).Error("failed to release idempotency key", "key", key, "error", err)
	}
}

func (app *Application) writeIdempotentReplay(w http.ResponseWriter, r *http.Request, replay *idempotentResponse) {
	headers := http.Header{}
	headers.Set("Idempotent-Replayed", "true")

	err := app.writeJSON(w, replay.Status, replay.Body, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
