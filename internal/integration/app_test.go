package integration_test

import (
	"log/slog"
	"os"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-ticket-booking/internal/app"
	"github.com/metinatakli/movie-ticket-booking/internal/booking"
	"github.com/metinatakli/movie-ticket-booking/internal/events"
	"github.com/metinatakli/movie-ticket-booking/internal/payment"
	"github.com/metinatakli/movie-ticket-booking/internal/repository"
	appvalidator "github.com/metinatakli/movie-ticket-booking/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App            *app.Application
	DB             *pgxpool.Pool
	RedisClient    *redis.Client
	SessionManager *scs.SessionManager
	Bookings       *booking.Service
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	bookingService, err := booking.NewService(
		booking.Config{
			ReferenceAttempts:     cfg.Booking.ReferenceAttempts,
			Currency:              cfg.Booking.Currency,
			HousekeepingBatchSize: cfg.Booking.HousekeepingBatchSize,
		},
		logger,
		repository.NewPostgresTransactor(db),
		repository.NewPostgresShowRepository(db),
		repository.NewPostgresSeatRepository(db),
		repository.NewPostgresBookingRepository(db),
		repository.NewPostgresPaymentRepository(db),
		events.NoopPublisher{},
	)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		sessionManager,
		bookingService,
		payment.NewStripeWebhook(cfg.Stripe.WebhookSecret),
	)

	return &TestApp{
		App:            application,
		DB:             db,
		RedisClient:    redisClient,
		SessionManager: sessionManager,
		Bookings:       bookingService,
	}, nil
}
