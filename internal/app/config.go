package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/metinatakli/stripe-checkout/internal/checkout"
	"github.com/metinatakli/stripe-checkout/internal/currency"
	"github.com/metinatakli/stripe-checkout/internal/domain"
	appvalidator "github.com/metinatakli/stripe-checkout/internal/validator"
	"github.com/stripe/stripe-go/v82"
)

type Config struct {
	Port             int
	Env              string
	BaseURL          string
	OtelCollectorUrl string
	DB               struct {
		DSN          string
		MaxOpenConns int
		MaxIdleTime  time.Duration
	}
	Redis struct {
		URL          string
		MaxOpenConns int
		MaxIdleConns int
		MaxIdleTime  time.Duration
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		Sender   string
	}
	Stripe struct {
		PublicKey     string `validate:"required,stripe_public_key"`
		SecretKey     string `validate:"required,stripe_secret_key"`
		WebhookSecret string `validate:"required,stripe_webhook_secret"`
		APIURL        string `validate:"omitempty,url"`
	}
	Checkout struct {
		Flow             string
		Mode             string
		UIMode           string
		ExpireMinutes    int
		SuccessURL       string `validate:"omitempty,url"`
		CancelURL        string `validate:"omitempty,url"`
		ReturnURL        string
		FailureURL       string
		Currency         string `validate:"omitempty,currency_code"`
		DefaultCurrency  string `validate:"required,currency_code"`
		AutomaticMethods bool
		MethodTypes      []string
	}
}

func loadEnv() {
	err := godotenv.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, reading configuration from the environment")
	}
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

// parseFlags reads the configuration from args. Secrets default to their
// environment variables so they stay out of the process list.
func parseFlags(args []string) (Config, bool, error) {
	var cfg Config

	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", 3000, "server port")
	fs.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.BaseURL, "base-url", envOr("BASE_URL", ""), "Public origin of this service, derived from the request when empty")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envOr("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", envOr("DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envOr("REDIS_URL", ""), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	fs.StringVar(&cfg.SMTP.Host, "smtp-host", envOr("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	fs.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	fs.StringVar(&cfg.SMTP.Username, "smtp-username", envOr("SMTP_USERNAME", ""), "SMTP username")
	fs.StringVar(&cfg.SMTP.Password, "smtp-password", envOr("SMTP_PASSWORD", ""), "SMTP password")
	fs.StringVar(&cfg.SMTP.Sender, "smtp-sender", envOr("SMTP_SENDER", "Checkout <no-reply@example.com>"), "SMTP sender")

	fs.StringVar(&cfg.Stripe.PublicKey, "stripe-public-key", envOr("STRIPE_PUBLIC_KEY", ""), "Stripe publishable key")
	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-secret-key", envOr("STRIPE_SECRET_KEY", ""), "Stripe secret key")
	fs.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", envOr("STRIPE_WEBHOOK_SECRET", ""), "Stripe webhook signing secret")
	fs.StringVar(&cfg.Stripe.APIURL, "stripe-api-url", envOr("STRIPE_API_URL", ""), "Stripe API base URL override")

	fs.StringVar(&cfg.Checkout.Flow, "checkout-flow", string(checkout.FlowSession), "Checkout flow (session|intent)")
	fs.StringVar(&cfg.Checkout.Mode, "checkout-mode", string(checkout.ModePayment), "Checkout session mode (payment|subscription)")
	fs.StringVar(&cfg.Checkout.UIMode, "checkout-ui-mode", string(checkout.UIModeHosted), "Checkout UI mode (hosted|embedded)")
	fs.IntVar(&cfg.Checkout.ExpireMinutes, "checkout-expire-minutes", checkout.MinExpireMinutes, "Minutes until an open checkout session expires")
	fs.StringVar(&cfg.Checkout.SuccessURL, "checkout-success-url", "", "Hosted checkout success page")
	fs.StringVar(&cfg.Checkout.CancelURL, "checkout-cancel-url", "", "Hosted checkout cancel page")
	fs.StringVar(&cfg.Checkout.ReturnURL, "checkout-return-url", "", "Embedded checkout return page")
	fs.StringVar(&cfg.Checkout.FailureURL, "checkout-failure-url", "", "Redirect target when Stripe rejects a create call")
	fs.StringVar(&cfg.Checkout.Currency, "checkout-currency", "", "Currency used for every payment intent")
	fs.StringVar(&cfg.Checkout.DefaultCurrency, "checkout-default-currency", currency.DefaultCurrency, "Currency used when the locale is unknown")
	fs.BoolVar(&cfg.Checkout.AutomaticMethods, "checkout-automatic-methods", false, "Let Stripe pick the payment methods of an intent")
	fs.Func("checkout-method-types", "Comma separated payment method types of an intent", func(value string) error {
		for _, methodType := range strings.Split(value, ",") {
			if methodType = strings.TrimSpace(methodType); methodType != "" {
				cfg.Checkout.MethodTypes = append(cfg.Checkout.MethodTypes, methodType)
			}
		}

		return nil
	})

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	return cfg, *displayVersion, nil
}

// validateConfig rejects a configuration the checkout builders would refuse,
// so a misconfiguration stops the process instead of failing every request.
func validateConfig(cfg Config, v *validator.Validate) error {
	err := v.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}

		errs := make([]error, 0, len(validationErrors))
		for _, fe := range validationErrors {
			errs = append(errs, domain.NewConfigurationError(fe.Namespace(), "%s", appvalidator.ValidationMessage(fe)))
		}

		return errors.Join(errs...)
	}

	err = checkout.ValidateSessionSettings(
		checkout.Mode(cfg.Checkout.Mode),
		checkout.UIMode(cfg.Checkout.UIMode),
		cfg.Checkout.ExpireMinutes,
	)
	if err != nil {
		return err
	}

	switch checkout.Flow(cfg.Checkout.Flow) {
	case checkout.FlowSession:
		sampleItems := func() []*checkout.LineItem {
			return []*checkout.LineItem{{Price: stripe.String("price_sample"), Quantity: stripe.Int64(1)}}
		}

		_, err = checkout.BuildSessionParameters(cfg.sessionConfig("http://localhost", sampleItems), time.Now())
	case checkout.FlowIntent:
		code := cfg.Checkout.Currency
		if code == "" {
			code = cfg.Checkout.DefaultCurrency
		}

		_, err = checkout.BuildPaymentIntentParameters(
			code,
			cfg.Checkout.AutomaticMethods,
			cfg.Checkout.MethodTypes,
			"",
			checkout.IntentExtras{},
		)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrUnsupportedCheckoutFlow, cfg.Checkout.Flow)
	}

	return err
}

// sessionConfig falls back to the pages served by this service for every
// URL that is not configured.
func (cfg Config) sessionConfig(origin string, lineItems func() []*checkout.LineItem) checkout.SessionConfig {
	if cfg.BaseURL != "" {
		origin = cfg.BaseURL
	}

	urls := checkout.DefaultURLs(origin)
	if cfg.Checkout.SuccessURL != "" {
		urls.Success = cfg.Checkout.SuccessURL
	}
	if cfg.Checkout.CancelURL != "" {
		urls.Cancel = cfg.Checkout.CancelURL
	}
	if cfg.Checkout.ReturnURL != "" {
		urls.Return = cfg.Checkout.ReturnURL
	}

	return checkout.SessionConfig{
		Mode:          checkout.Mode(cfg.Checkout.Mode),
		UIMode:        checkout.UIMode(cfg.Checkout.UIMode),
		ExpireMinutes: cfg.Checkout.ExpireMinutes,
		LineItems:     lineItems,
		SuccessURL:    checkout.Static(urls.Success),
		CancelURL:     checkout.Static(urls.Cancel),
		ReturnURL:     checkout.Static(urls.Return),
	}
}
