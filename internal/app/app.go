package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout/api"
	"github.com/metinatakli/stripe-checkout/internal/checkout"
	"github.com/metinatakli/stripe-checkout/internal/currency"
	"github.com/metinatakli/stripe-checkout/internal/customer"
	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/metinatakli/stripe-checkout/internal/mailer"
	"github.com/metinatakli/stripe-checkout/internal/payment"
	"github.com/metinatakli/stripe-checkout/internal/repository"
	appvalidator "github.com/metinatakli/stripe-checkout/internal/validator"
	"github.com/metinatakli/stripe-checkout/internal/vcs"
	"github.com/metinatakli/stripe-checkout/internal/webhook"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const serviceName = "checkout-api"

var _ api.ServerInterface = (*Application)(nil)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager

	userRepo     domain.UserRepository
	customerRepo domain.CustomerRepository
	processor    domain.PaymentProcessor

	currencies   *currency.Resolver
	orchestrator *checkout.Orchestrator
	returns      *checkout.ReturnResolver
	customers    *customer.Service
	webhooks     *webhook.Dispatcher

	webhookEvents metric.Int64Counter
}

func Run() error {
	loadEnv()

	cfg, displayVersion, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	baseHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(baseHandler)

	validator := appvalidator.NewValidator()

	err = validateConfig(cfg, validator)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	tel, err := initTelemetry(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		return err
	}
	defer func() {
		err := tel.shutdown(context.Background())
		if err != nil {
			logger.Error("failed to shutdown telemetry providers", "error", err)
		}
	}()

	if !tel.enabled() {
		logger.Info("OpenTelemetry collector URL not set, skipping initialization")
	}

	logger = slog.New(tel.logHandler(baseHandler))

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

	app, err := NewApp(
		cfg,
		logger,
		validator,
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient),
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresCustomerRepository(db),
		payment.NewStripeProcessor(payment.StripeConfig{
			SecretKey: cfg.Stripe.SecretKey,
			BaseURL:   cfg.Stripe.APIURL,
			Logger:    logger,
		}),
	)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	userRepo domain.UserRepository,
	customerRepo domain.CustomerRepository,
	processor domain.PaymentProcessor) (*Application, error) {

	app := &Application{
		config:         cfg,
		logger:         logger,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		userRepo:       userRepo,
		customerRepo:   customerRepo,
		processor:      processor,
	}

	err := app.wire()
	if err != nil {
		return nil, err
	}

	return app, nil
}

// wire builds the checkout services on top of the repositories, processor and
// logger already set on app.
func (app *Application) wire() error {
	app.currencies = currency.NewResolver(app.config.Checkout.DefaultCurrency)
	app.orchestrator = checkout.NewOrchestrator(app.processor, app.customerRepo, app.logger)
	app.returns = checkout.NewReturnResolver(app.processor)
	app.customers = customer.NewService(app.processor, app.customerRepo, app.validator, app.logger)

	dispatcher, err := webhook.NewDispatcher(
		app.config.Stripe.WebhookSecret,
		app.webhookOverrides(),
		app.webhookRegistry(),
		app.logger,
	)
	if err != nil {
		return err
	}

	app.webhooks = dispatcher

	app.webhookEvents, err = otel.Meter(serviceName).Int64Counter(
		"checkout.webhook.events",
		metric.WithDescription("Stripe webhook events received, by outcome"),
		metric.WithUnit("{event}"),
	)

	return err
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

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)
	r.Use(app.logRequest)
	r.Use(app.sessionManager.LoadAndSave)

	return api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      []api.MiddlewareFunc{app.authenticateOperation},
		ErrorHandlerFunc: app.badRequestResponse,
	})
}
