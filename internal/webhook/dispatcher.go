package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
)

type Ack struct {
	Success bool `json:"success"`
}

type Dispatcher struct {
	secret    string
	overrides Table
	registry  Registry
	logger    *slog.Logger
}

// NewDispatcher validates every Named override against the registry so a
// misspelled handler fails at startup instead of on the first event.
func NewDispatcher(secret string, overrides Table, registry Registry, logger *slog.Logger) (*Dispatcher, error) {
	if secret == "" {
		return nil, domain.NewConfigurationError("webhook secret", "an endpoint secret is required")
	}

	for eventType, handler := range overrides {
		if handler.kind != kindNamed {
			continue
		}

		if _, ok := registry[handler.name]; !ok {
			return nil, domain.NewConfigurationError(
				"webhook handlers",
				"%s refers to unknown handler %q",
				eventType,
				handler.name,
			)
		}
	}

	return &Dispatcher{
		secret:    secret,
		overrides: Merge(nil, overrides),
		registry:  registry,
		logger:    logger,
	}, nil
}

// Handle verifies the payload signature and dispatches the event. Verification
// failures never produce an ack.
func (d *Dispatcher) Handle(ctx context.Context, payload []byte, signatureHeader string) (Ack, error) {
	event, err := stripewebhook.ConstructEventWithOptions(
		payload,
		signatureHeader,
		d.secret,
		stripewebhook.ConstructEventOptions{
			Tolerance:                stripewebhook.DefaultTolerance,
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		if isSignatureError(err) {
			d.logger.Warn("webhook signature verification failed", "error", err)
			return Ack{}, fmt.Errorf("%w: %w", domain.ErrSignatureVerification, err)
		}

		d.logger.Error("invalid webhook payload", "error", err)
		return Ack{}, fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)
	}

	return d.Dispatch(ctx, event)
}

// Dispatch runs the handler registered for an already verified event. Handler
// errors are returned unmodified.
func (d *Dispatcher) Dispatch(ctx context.Context, event stripe.Event) (Ack, error) {
	table := Merge(DefaultTable(), d.overrides)

	handler, ok := table[event.Type]
	if !ok {
		d.logger.Warn("unhandled event type", "event_id", event.ID, "type", event.Type)
		return Ack{Success: false}, nil
	}

	logger := d.logger.With("event_id", event.ID, "type", event.Type, "handler", handler.String())

	switch handler.kind {
	case kindIgnore:
		logger.Debug("event acknowledged without handler")
		return Ack{Success: true}, nil
	case kindFunc:
		if err := handler.fn(ctx, event.Data); err != nil {
			return Ack{}, err
		}
	case kindNamed:
		if err := d.registry[handler.name](ctx, event.Data); err != nil {
			return Ack{}, err
		}
	}

	logger.Info("event handled")

	return Ack{Success: true}, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, stripewebhook.ErrNotSigned) ||
		errors.Is(err, stripewebhook.ErrInvalidHeader) ||
		errors.Is(err, stripewebhook.ErrNoValidSignature) ||
		errors.Is(err, stripewebhook.ErrTooOld)
}
