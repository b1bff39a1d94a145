package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":   {},
	"requestId":   {},
	"createdAt":   {},
	"paymentDate": {},
	"cancelledAt": {},
	"id":          {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(content))
	require.NoError(t, err, "failed to execute %s", path)
}

func resetDatabase(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/reset.sql")
	executeSQLFile(t, app.DB, "testdata/catalog_up.sql")
	executeSQLFile(t, app.DB, "testdata/accounts_up.sql")
	executeSQLFile(t, app.DB, "testdata/bookings_up.sql")
	executeSQLFile(t, app.DB, "testdata/payments_up.sql")

	require.NoError(t, app.Redis.FlushDB(context.Background()).Err())
	app.Mailer.Reset()
}

func bearer(t testing.TB, accountId int, admin bool) map[string]string {
	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(accountId),
		"iss":   TestJWTIssuer,
		"admin": admin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + token}
}

func balanceOf(t testing.TB, app *TestApp, accountId int) decimal.Decimal {
	var balance decimal.Decimal

	err := app.DB.QueryRow(context.Background(), `SELECT balance FROM accounts WHERE id = $1`, accountId).Scan(&balance)
	require.NoError(t, err)

	return balance
}

type seatState struct {
	Capacity       int
	BookedSeats    int
	BookingEnabled bool
}

func seatStateOf(t testing.TB, app *TestApp, showtimeId int) seatState {
	var s seatState

	err := app.DB.QueryRow(
		context.Background(),
		`SELECT capacity, booked_seats, booking_enabled FROM showtimes WHERE id = $1`,
		showtimeId,
	).Scan(&s.Capacity, &s.BookedSeats, &s.BookingEnabled)
	require.NoError(t, err)

	return s
}

// activeTickets sums the tickets of active bookings, which must always match
// the booked-seat counter of the showtime.
func activeTickets(t testing.TB, app *TestApp, showtimeId int) int {
	var tickets int

	err := app.DB.QueryRow(
		context.Background(),
		`SELECT COALESCE(SUM(tickets), 0) FROM bookings WHERE showtime_id = $1 AND is_active`,
		showtimeId,
	).Scan(&tickets)
	require.NoError(t, err)

	return tickets
}

func notificationCount(t testing.TB, app *TestApp, accountId int, purpose string) int {
	var count int

	err := app.DB.QueryRow(
		context.Background(),
		`SELECT COUNT(*) FROM notifications WHERE account_id = $1 AND purpose = $2`,
		accountId,
		purpose,
	).Scan(&count)
	require.NoError(t, err)

	return count
}

// eventually waits for work done by the notification dispatcher.
func eventually(t testing.TB, cond func() bool) {
	t.Helper()

	require.Eventually(t, cond, 5*time.Second, 20*time.Millisecond)
}

func sentTo(app *TestApp, recipient, templateFile string) bool {
	for _, email := range app.Mailer.GetSentEmails() {
		if email.Recipient == recipient && email.TemplateFile == templateFile {
			return true
		}
	}

	return false
}
