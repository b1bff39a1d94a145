package integration_test

const (
	TestJWTSecret     = "integration-jwt-secret"
	TestJWTIssuer     = "moviemate-identity"
	TestWebhookSecret = "whsec_integration_secret"

	// Account related constants
	TestAccountId      = 1
	TestAccountEmail   = "john@example.com"
	TestPoorAccountId  = 2
	TestFirstRacerId   = 100
	TestRacerCount     = 20
	TestAdminAccountId = 999

	// Showtime related constants
	TestAlmostFullShowtimeId = 1
	TestEmptyShowtimeId      = 2
	TestWithdrawnShowtimeId  = 3
	TestEmptyShowtimeSeats   = 5

	// Payment related constants
	TestPendingCheckoutSessionId  = "cs_test_pending"
	TestExpiringCheckoutSessionId = "cs_test_expiring"
)
