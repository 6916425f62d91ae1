package payment

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

type StripeConfig struct {
	SecretKey string
	// BaseURL overrides the Stripe API endpoint, used in tests.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// StripeProcessor talks to the Stripe API with its own client instead of the
// package level key. Requests are never retried by the client.
type StripeProcessor struct {
	sc *client.API
}

func NewStripeProcessor(cfg StripeConfig) *StripeProcessor {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        cfg.HTTPClient,
		MaxNetworkRetries: stripe.Int64(0),
	}

	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}

	if cfg.Logger != nil {
		backendCfg.LeveledLogger = &slogLeveledLogger{logger: cfg.Logger}
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	}

	return &StripeProcessor{
		sc: client.New(cfg.SecretKey, backends),
	}
}

func (s *StripeProcessor) CreateCheckoutSession(
	ctx context.Context,
	params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {

	params.Context = ctx
	return s.sc.CheckoutSessions.New(params)
}

func (s *StripeProcessor) CreatePaymentIntent(
	ctx context.Context,
	params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {

	params.Context = ctx
	return s.sc.PaymentIntents.New(params)
}

func (s *StripeProcessor) GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	return s.sc.CheckoutSessions.Get(id, params)
}

func (s *StripeProcessor) GetPaymentIntent(
	ctx context.Context,
	id string,
	expand ...string) (*stripe.PaymentIntent, error) {

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	for _, field := range expand {
		params.AddExpand(field)
	}

	return s.sc.PaymentIntents.Get(id, params)
}

func (s *StripeProcessor) CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	params.Context = ctx
	return s.sc.Customers.New(params)
}

func (s *StripeProcessor) UpdateCustomer(
	ctx context.Context,
	id string,
	params *stripe.CustomerParams) (*stripe.Customer, error) {

	params.Context = ctx
	return s.sc.Customers.Update(id, params)
}

func (s *StripeProcessor) DeleteCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx

	return s.sc.Customers.Del(id, params)
}

// slogLeveledLogger routes stripe-go's own logging through slog.
type slogLeveledLogger struct {
	logger *slog.Logger
}

func (l *slogLeveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *slogLeveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *slogLeveledLogger) Infof(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *slogLeveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}
