package integration_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/moviemate/internal/app"
	"github.com/metinatakli/moviemate/internal/booking"
	"github.com/metinatakli/moviemate/internal/mailer"
	"github.com/metinatakli/moviemate/internal/notification"
	"github.com/metinatakli/moviemate/internal/payment"
	"github.com/metinatakli/moviemate/internal/repository"
	appvalidator "github.com/metinatakli/moviemate/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App        *app.Application
	Manager    *booking.Manager
	Dispatcher *notification.Dispatcher
	DB         *pgxpool.Pool
	Redis      *redis.Client
	Mailer     *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	accountRepo := repository.NewPostgresAccountRepository(db)
	showtimeRepo := repository.NewPostgresShowtimeRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	notificationRepo := repository.NewPostgresNotificationRepository(db)
	paymentRepo := repository.NewPostgresPaymentRepository(db)
	bookingStore := repository.NewPostgresBookingStore(db, cfg.Booking.LockTimeout)

	dispatcher := notification.NewDispatcher(
		notification.MultiSink{
			notification.NewInAppSink(notificationRepo),
			notification.NewEmailSink(mockMailer),
		},
		logger,
		notification.DispatcherConfig{
			Workers:         cfg.Notification.Workers,
			BufferSize:      cfg.Notification.BufferSize,
			DeliveryTimeout: cfg.Notification.DeliveryTimeout,
		},
	)
	dispatcher.Start()

	manager := booking.NewManager(bookingStore, dispatcher, logger, booking.Config{
		MaxAttempts:  cfg.Booking.MaxAttempts,
		RetryBackoff: cfg.Booking.RetryBackoff,
	})

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		manager,
		accountRepo,
		showtimeRepo,
		bookingRepo,
		notificationRepo,
		paymentRepo,
		payment.NewMockPaymentProvider(),
	)

	return &TestApp{
		App:        application,
		Manager:    manager,
		Dispatcher: dispatcher,
		DB:         db,
		Redis:      redisClient,
		Mailer:     mockMailer,
	}, nil
}

func (a *TestApp) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.Dispatcher.Shutdown(ctx)
	a.Redis.Close()
	a.DB.Close()
}
