package integration_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/stripe-checkout/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "stripe_checkout"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
}

// baseConfig points the application at the suite containers. Suites needing
// another checkout setup adjust it in setupSuite.
func baseConfig(db *PostgresContainer, cache *RedisContainer) app.Config {
	var cfg app.Config

	cfg.Port = 3000
	cfg.Env = "test"
	cfg.BaseURL = "http://shop.test"

	cfg.DB.DSN = db.ConnectionString
	cfg.DB.MaxOpenConns = 25
	cfg.DB.MaxIdleTime = 2 * time.Minute

	cfg.Redis.URL = cache.ConnectionString
	cfg.Redis.MaxOpenConns = 10
	cfg.Redis.MaxIdleConns = 10
	cfg.Redis.MaxIdleTime = 2 * time.Minute

	cfg.Stripe.PublicKey = TestPublicKey
	cfg.Stripe.SecretKey = TestSecretKey
	cfg.Stripe.WebhookSecret = TestWebhookSecret

	cfg.Checkout.Flow = "session"
	cfg.Checkout.Mode = "payment"
	cfg.Checkout.UIMode = "hosted"
	cfg.Checkout.ExpireMinutes = 30
	cfg.Checkout.DefaultCurrency = "usd"

	return cfg
}

func (s *BaseSuite) SetupSuite() {
	s.setupSuite(nil)
}

func (s *BaseSuite) setupSuite(configure func(*app.Config)) {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	require.NoError(s.T(), err, "failed to start db container")

	redisContainer, err := getCacheContainer(ctx)
	require.NoError(s.T(), err, "failed to start cache container")

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	cfg := baseConfig(postgresContainer, redisContainer)
	if configure != nil {
		configure(&cfg)
	}

	testApp, err := newTestApp(cfg)
	require.NoError(s.T(), err, "cannot initialize app")

	s.app = testApp
}

func (s *BaseSuite) TearDownSuite() {
	if s.app != nil {
		s.app.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	LoginAs          string
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		if s.LoginAs != "" {
			for _, cookie := range testApp.login(t, s.LoginAs, TestUserPassword) {
				req.AddCookie(cookie)
			}
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
