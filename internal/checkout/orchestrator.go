package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

// Outcome holds either the created processor object or, when the processor
// rejected the call, the page the caller should be redirected to.
type Outcome struct {
	Session  *stripe.CheckoutSession
	Intent   *stripe.PaymentIntent
	Redirect string
}

func (o Outcome) Failed() bool {
	return o.Redirect != ""
}

type IntentRequest struct {
	Currency         string
	AutomaticMethods bool
	MethodTypes      []string
	Extras           IntentExtras
}

type Orchestrator struct {
	processor domain.PaymentProcessor
	customers domain.CustomerRepository
	logger    *slog.Logger
}

func NewOrchestrator(
	processor domain.PaymentProcessor,
	customers domain.CustomerRepository,
	logger *slog.Logger) *Orchestrator {

	return &Orchestrator{
		processor: processor,
		customers: customers,
		logger:    logger,
	}
}

// CreateSession creates a Checkout Session for the given parameters. A zero
// userID means the caller is anonymous.
func (o *Orchestrator) CreateSession(
	ctx context.Context,
	userID int,
	params *SessionParameters,
	onFailure string) (Outcome, error) {

	binding, err := o.customerBinding(ctx, userID)
	if err != nil {
		return Outcome{}, err
	}

	if binding != nil {
		params.CustomerID = binding.CustomerID
		o.logger.Debug("bound stripe customer to checkout session", "user_id", userID, "customer", binding.CustomerID)
	}

	session, err := o.processor.CreateCheckoutSession(ctx, params.StripeParams())
	if err != nil {
		o.logger.Error(
			"failed to create checkout session",
			"error", fmt.Errorf("%w: %w", domain.ErrProcessorCreate, err),
			"params", params,
		)

		return Outcome{Redirect: onFailure}, nil
	}

	o.logger.Info("checkout session created", "session_id", session.ID)

	return Outcome{Session: session}, nil
}

func (o *Orchestrator) CreateIntent(
	ctx context.Context,
	userID int,
	req IntentRequest,
	onFailure string) (Outcome, error) {

	binding, err := o.customerBinding(ctx, userID)
	if err != nil {
		return Outcome{}, err
	}

	var customerID, secret string
	if binding != nil {
		customerID = binding.CustomerID
		secret = binding.IdempotencyKey.String()
	}

	params, err := BuildPaymentIntentParameters(req.Currency, req.AutomaticMethods, req.MethodTypes, customerID, req.Extras)
	if err != nil {
		return Outcome{}, err
	}

	params.IdempotencyKey, err = DeriveIdempotencyKey(params, userID, secret)
	if err != nil {
		return Outcome{}, err
	}

	intent, err := o.processor.CreatePaymentIntent(ctx, params.StripeParams())
	if err != nil {
		o.logger.Error(
			"failed to create payment intent",
			"error", fmt.Errorf("%w: %w", domain.ErrProcessorCreate, err),
			"params", params,
		)

		return Outcome{Redirect: onFailure}, nil
	}

	o.logger.Info("payment intent created", "payment_intent_id", intent.ID)

	return Outcome{Intent: intent}, nil
}

func (o *Orchestrator) customerBinding(ctx context.Context, userID int) (*domain.StripeCustomer, error) {
	if userID <= 0 || o.customers == nil {
		return nil, nil
	}

	customer, err := o.customers.GetByUserId(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("customer binding lookup failed: %w", err)
	}

	return customer, nil
}
