package app

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/metinatakli/moviemate/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRequireAuthentication(t *testing.T) {
	expired := func(t *testing.T) string {
		return signToken(t, accessClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "7",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})
	}

	tests := []struct {
		name       string
		header     func(t *testing.T) string
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     func(t *testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     func(t *testing.T) string { return "Basic dXNlcjpwYXNz" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed token",
			header:     func(t *testing.T) string { return "Bearer not-a-jwt" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     func(t *testing.T) string { return "Bearer " + expired(t) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "token without expiry",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, accessClaims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
				})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "token signed with another secret",
			header: func(t *testing.T) string {
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   "7",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}).SignedString([]byte("another-secret"))
				if err != nil {
					t.Fatal(err)
				}
				return "Bearer " + token
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "subject is not an account id",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, accessClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   "jane",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     func(t *testing.T) string { return "Bearer " + accessToken(t, 7, false) },
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := new(mocks.MockAccountRepo)
			accountRepo.On("GetById", mock.Anything, 7).Return(&domain.Account{
				ID:      7,
				Email:   "jane@example.com",
				Balance: decimal.RequireFromString("50.00"),
			}, nil).Maybe()

			app := newTestApplication(func(a *Application) {
				a.accountRepo = accountRepo
			})

			w, r := executeRequest(t, http.MethodGet, "/accounts/me", nil)
			if header := tt.header(t); header != "" {
				r.Header.Set("Authorization", header)
			}

			app.Routes().ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "Authorization", w.Header().Get("Vary"))

			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
				assert.Equal(t, ErrUnauthorized, decodeErrorResponse(t, w).Message)
			}
		})
	}
}

func TestParseAccessTokenChecksIssuer(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.config.JWT.Issuer = "moviemate-identity"
	})

	token := func(issuer string) string {
		return signToken(t, accessClaims{
			Admin: true,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				Subject:   strconv.Itoa(3),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
	}

	_, err := app.parseAccessToken(token("someone-else"))
	assert.Error(t, err)

	p, err := app.parseAccessToken(token("moviemate-identity"))
	assert.NoError(t, err)
	assert.Equal(t, principal{accountId: 3, admin: true}, p)
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.showtimeRepo = new(mocks.MockShowtimeRepo)
	})

	w, r := executeRequest(t, http.MethodDelete, "/admin/showtimes/3", nil)
	authenticate(t, r, 7, false)

	app.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, ErrForbidden, decodeErrorResponse(t, w).Message)
}

func TestAuthorizeFollowsOperationSecurity(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		url            string
		token          func(t *testing.T) string
		header         http.Header
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "public operation without token",
			method:     http.MethodGet,
			url:        "/healthcheck",
			wantStatus: http.StatusOK,
		},
		{
			name:           "account operation without token",
			method:         http.MethodGet,
			url:            "/accounts/me/notifications",
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorized,
		},
		{
			name:           "admin operation without token",
			method:         http.MethodGet,
			url:            "/admin/bookings/stats",
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorized,
		},
		{
			name:           "admin operation with an account token",
			method:         http.MethodGet,
			url:            "/admin/bookings/stats",
			token:          func(t *testing.T) string { return accessToken(t, 7, false) },
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrForbidden,
		},
		{
			name:           "malformed path parameter",
			method:         http.MethodDelete,
			url:            "/bookings/abc",
			token:          func(t *testing.T) string { return accessToken(t, 7, false) },
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid bookingId parameter",
		},
		{
			name:           "repeated idempotency key header",
			method:         http.MethodPost,
			url:            "/bookings",
			token:          func(t *testing.T) string { return accessToken(t, 7, false) },
			header:         http.Header{"Idempotency-Key": {"a", "b"}},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "Expected one value for Idempotency-Key, got 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			w, r := executeRequest(t, tt.method, tt.url, nil)
			if tt.token != nil {
				r.Header.Set("Authorization", "Bearer "+tt.token(t))
			}
			for key, values := range tt.header {
				r.Header[key] = values
			}

			app.Routes().ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantErrMessage != "" {
				assert.Equal(t, tt.wantErrMessage, decodeErrorResponse(t, w).Message)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication()

	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w, r := executeRequest(t, http.MethodGet, "/", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
	assert.Equal(t, ErrInternalServer, decodeErrorResponse(t, w).Message)
}

func TestUnknownRoutes(t *testing.T) {
	app := newTestApplication()

	w, r := executeRequest(t, http.MethodGet, "/does-not-exist", nil)
	app.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrNotFound, decodeErrorResponse(t, w).Message)

	w, r = executeRequest(t, http.MethodPatch, "/healthcheck", nil)
	app.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "The PATCH method is not supported for this resource", decodeErrorResponse(t, w).Message)
}

func TestGetHealth(t *testing.T) {
	app := newTestApplication()

	w, r := executeRequest(t, http.MethodGet, "/healthcheck", nil)
	app.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"UP"`)
	assert.Contains(t, w.Body.String(), `"environment":"test"`)

	w, r = executeRequest(t, http.MethodGet, "/openapi.json", nil)
	app.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"openapi":"3.0.3"`)
	assert.Contains(t, w.Body.String(), `"operationId":"createBooking"`)
}
