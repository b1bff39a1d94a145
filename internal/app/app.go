package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/booking"
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/metinatakli/moviemate/internal/mailer"
	"github.com/metinatakli/moviemate/internal/notification"
	"github.com/metinatakli/moviemate/internal/payment"
	"github.com/metinatakli/moviemate/internal/repository"
	appvalidator "github.com/metinatakli/moviemate/internal/validator"
	"github.com/metinatakli/moviemate/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/stripe/stripe-go/v82"
)

const serviceName = "moviemate-api"

var (
	version = vcs.Version()
)

// BookingManager is the part of booking.Manager the handlers depend on.
type BookingManager interface {
	CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*booking.CreateBookingResult, error)
	CancelBooking(ctx context.Context, bookingID int) (*booking.CancelBookingResult, error)
	CompleteTopUp(ctx context.Context, checkoutSessionID string) (*booking.TopUpResult, error)
}

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	bookings  BookingManager

	accountRepo      domain.AccountRepository
	showtimeRepo     domain.ShowtimeRepository
	bookingRepo      domain.BookingRepository
	notificationRepo domain.NotificationRepository
	paymentRepo      domain.PaymentRepository

	paymentProvider domain.PaymentProvider
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	bookings BookingManager,
	accountRepo domain.AccountRepository,
	showtimeRepo domain.ShowtimeRepository,
	bookingRepo domain.BookingRepository,
	notificationRepo domain.NotificationRepository,
	paymentRepo domain.PaymentRepository,
	paymentProvider domain.PaymentProvider) *Application {

	return &Application{
		config:           cfg,
		logger:           logger,
		db:               db,
		redis:            redisClient,
		validator:        validator,
		bookings:         bookings,
		accountRepo:      accountRepo,
		showtimeRepo:     showtimeRepo,
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		paymentRepo:      paymentRepo,
		paymentProvider:  paymentProvider,
	}
}

func Run() error {
	cfg, displayVersion := ParseConfig()

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	textHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(textHandler)

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(textHandler, newOtelLogHandler()))
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	accountRepo := repository.NewPostgresAccountRepository(db)
	showtimeRepo := repository.NewPostgresShowtimeRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	notificationRepo := repository.NewPostgresNotificationRepository(db)
	paymentRepo := repository.NewPostgresPaymentRepository(db)
	bookingStore := repository.NewPostgresBookingStore(db, cfg.Booking.LockTimeout)

	sink, closeSinks, err := newNotificationSink(cfg, logger, notificationRepo)
	if err != nil {
		return err
	}
	defer closeSinks()

	dispatcher := notification.NewDispatcher(sink, logger, notification.DispatcherConfig{
		Workers:         cfg.Notification.Workers,
		BufferSize:      cfg.Notification.BufferSize,
		DeliveryTimeout: cfg.Notification.DeliveryTimeout,
	})
	dispatcher.Start()

	manager := booking.NewManager(bookingStore, dispatcher, logger, booking.Config{
		MaxAttempts:  cfg.Booking.MaxAttempts,
		RetryBackoff: cfg.Booking.RetryBackoff,
	})

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		manager,
		accountRepo,
		showtimeRepo,
		bookingRepo,
		notificationRepo,
		paymentRepo,
		payment.NewStripePaymentProvider(cfg.Stripe.FailureUrl, cfg.Stripe.SuccessUrl),
	)

	err = app.run()

	// in-flight notifications are flushed after the server stops accepting bookings
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if shutdownErr := dispatcher.Shutdown(ctx); shutdownErr != nil {
		logger.Error("notification dispatcher did not drain", "error", shutdownErr)
	}

	return err
}

// newNotificationSink fans every event out to the in-app store, email and the
// configured broker. The returned function closes broker connections.
func newNotificationSink(
	cfg Config,
	logger *slog.Logger,
	notificationRepo domain.NotificationRepository) (notification.Sink, func(), error) {

	smtpMailer := mailer.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.Sender,
	)

	sinks := notification.MultiSink{
		notification.NewInAppSink(notificationRepo),
		notification.NewEmailSink(smtpMailer),
	}

	closeSinks := func() {}

	switch cfg.Notification.Broker {
	case BrokerNone:
	case BrokerAMQP:
		amqpSink := notification.NewAMQPSink(cfg.Notification.AMQPUrl, cfg.Notification.AMQPQueue)
		sinks = append(sinks, amqpSink)
		closeSinks = func() {
			if err := amqpSink.Close(); err != nil {
				logger.Error("failed to close amqp sink", "error", err)
			}
		}
	case BrokerKafka:
		producer, err := notification.NewKafkaProducer(strings.Split(cfg.Notification.KafkaBrokers, ","))
		if err != nil {
			return nil, nil, err
		}

		kafkaSink := notification.NewKafkaSink(producer, cfg.Notification.KafkaTopic)
		sinks = append(sinks, kafkaSink)
		closeSinks = func() {
			if err := kafkaSink.Close(); err != nil {
				logger.Error("failed to close kafka sink", "error", err)
			}
		}
	default:
		return nil, nil, fmt.Errorf("unknown notification broker %q", cfg.Notification.Broker)
	}

	logger.Info("notification sinks configured", "broker", cfg.Notification.Broker, "sinks", len(sinks))

	return sinks, closeSinks, nil
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.logRequest)

	return api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      []api.MiddlewareFunc{app.authorize},
		ErrorHandlerFunc: app.invalidParamResponse,
	})
}
