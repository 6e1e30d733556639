package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-co-op/gocron/v2"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-ticket-booking/api"
	"github.com/metinatakli/movie-ticket-booking/internal/booking"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/metinatakli/movie-ticket-booking/internal/events"
	"github.com/metinatakli/movie-ticket-booking/internal/payment"
	"github.com/metinatakli/movie-ticket-booking/internal/repository"
	appvalidator "github.com/metinatakli/movie-ticket-booking/internal/validator"
	"github.com/metinatakli/movie-ticket-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

const serviceName = "movie-ticket-booking-api"

var (
	version = vcs.Version()
)

var _ api.ServerInterface = (*Application)(nil)

// BookingService is the booking core as seen by the HTTP handlers.
type BookingService interface {
	ListAvailableSeats(ctx context.Context, showID int) (*domain.SeatMap, error)
	CreateBooking(ctx context.Context, actor domain.Actor, input booking.CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, actor domain.Actor, bookingID int) (*domain.Booking, error)
	ListBookings(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error)
	CancelBooking(ctx context.Context, actor domain.Actor, bookingID int, reason string) (*domain.Booking, error)
	ProcessPayment(ctx context.Context, actor domain.Actor, input booking.ProcessPaymentInput) (*domain.Payment, error)
	GetPayment(ctx context.Context, actor domain.Actor, paymentID int) (*domain.Payment, error)
	ListPayments(ctx context.Context, actor domain.Actor, filter domain.PaymentFilter) ([]domain.Payment, *domain.Metadata, error)
}

type PaymentWebhook interface {
	Parse(payload []byte, signature string) (*payment.Confirmation, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type Application struct {
	config         Config
	logger         *slog.Logger
	db             pinger
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager

	bookingService BookingService
	paymentWebhook PaymentWebhook
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	Kafka            KafkaConfig
	Stripe           StripeConfig
	Booking          BookingConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
	AutoMigrate  bool
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type StripeConfig struct {
	WebhookSecret string
}

type BookingConfig struct {
	ReferenceAttempts     int
	Currency              string
	HousekeepingInterval  time.Duration
	HousekeepingBatchSize int
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	bookingService BookingService,
	paymentWebhook PaymentWebhook) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		sessionManager: sessionManager,
		bookingService: bookingService,
		paymentWebhook: paymentWebhook,
	}
}

func parseFlags() Config {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.BoolVar(&cfg.DB.AutoMigrate, "db-automigrate", false, "Apply database migrations on startup")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.Func("kafka-brokers", "Comma separated Kafka brokers (events are dropped when empty)", func(s string) error {
		for _, b := range strings.Split(s, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
		return nil
	})
	flag.StringVar(&cfg.Kafka.Topic, "kafka-topic", "booking-events", "Kafka topic for booking lifecycle events")

	flag.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", "", "Stripe webhook secret")

	flag.IntVar(&cfg.Booking.ReferenceAttempts, "booking-reference-attempts", 5, "Attempts to generate a unique booking reference")
	flag.StringVar(&cfg.Booking.Currency, "booking-currency", "USD", "Currency of booking payments")
	flag.DurationVar(&cfg.Booking.HousekeepingInterval, "booking-housekeeping-interval", 5*time.Minute, "Interval of the booking housekeeping jobs")
	flag.IntVar(&cfg.Booking.HousekeepingBatchSize, "booking-housekeeping-batch", 100, "Bookings handled per housekeeping run")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	return cfg
}

func Run() error {
	cfg := parseFlags()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	logger = newLogger(cfg)

	if cfg.DB.AutoMigrate {
		err = MigrateUp(cfg.DB.DSN)
		if err != nil {
			return err
		}

		logger.Info("database migrations applied")
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

	var publisher domain.EventPublisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()

		publisher = kafkaPublisher
	} else {
		logger.Info("no kafka brokers configured, booking events are not published")
	}

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
		publisher,
	)
	if err != nil {
		return err
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	err = bookingService.ScheduleHousekeeping(scheduler, cfg.Booking.HousekeepingInterval)
	if err != nil {
		return err
	}

	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", "error", err)
		}
	}()

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		NewSessionManager(redisClient),
		bookingService,
		payment.NewStripeWebhook(cfg.Stripe.WebhookSecret),
	)

	return app.serve()
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
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
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
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

func (app *Application) serve() error {
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

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

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
	r.Use(middleware.Logger)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))

	r.Use(app.sessionManager.LoadAndSave)

	return api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      []api.MiddlewareFunc{app.requireSession},
		ErrorHandlerFunc: app.invalidParamResponse,
	})
}
