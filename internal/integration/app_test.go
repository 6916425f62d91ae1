package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout/internal/app"
	"github.com/metinatakli/stripe-checkout/internal/mailer"
	"github.com/metinatakli/stripe-checkout/internal/payment"
	"github.com/metinatakli/stripe-checkout/internal/repository"
	appvalidator "github.com/metinatakli/stripe-checkout/internal/validator"
	"github.com/redis/go-redis/v9"
)

// TestApp is the application under test, backed by real Postgres and Redis
// containers and an in-memory Stripe.
type TestApp struct {
	App       *app.Application
	DB        *pgxpool.Pool
	Cache     *redis.Client
	Mailer    *mailer.MockMailer
	Processor *payment.MockProcessor
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mailer := mailer.NewMockMailer()
	processor := payment.NewMockProcessor()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application, err := app.NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		mailer,
		app.NewSessionManager(redisClient),
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresCustomerRepository(db),
		processor,
	)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	return &TestApp{
		App:       application,
		DB:        db,
		Cache:     redisClient,
		Mailer:    mailer,
		Processor: processor,
	}, nil
}

func (a *TestApp) Close() {
	a.Cache.Close()
	a.DB.Close()
}
