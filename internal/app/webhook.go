package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/metinatakli/stripe-checkout/api"
	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/metinatakli/stripe-checkout/internal/webhook"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	maxWebhookBodyBytes = 65536

	receiptHandler  = "send_receipt"
	receiptTemplate = "payment_receipt.tmpl"
)

func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		app.countWebhookEvent(r.Context(), "rejected")
		app.badRequestResponse(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err))
		return
	}

	ack, err := app.webhooks.Handle(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if webhookRejected(err) {
			app.countWebhookEvent(r.Context(), "rejected")
			app.badRequestResponse(w, r, err)
		} else {
			app.countWebhookEvent(r.Context(), "failed")
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	outcome := "handled"
	if !ack.Success {
		outcome = "unhandled"
	}
	app.countWebhookEvent(r.Context(), outcome)

	err = app.writeJSON(w, http.StatusOK, api.WebhookAckResponse{Success: ack.Success}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// webhookRejected reports errors caused by the request itself. Anything else
// comes from a handler of a verified event and is left to Stripe to retry.
func webhookRejected(err error) bool {
	return errors.Is(err, domain.ErrSignatureVerification) || errors.Is(err, domain.ErrInvalidPayload)
}

// decodeEventData unmarshals the object of a verified event.
func decodeEventData(data *stripe.EventData, dst any) error {
	err := json.Unmarshal(data.Raw, dst)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEventDecode, err)
	}

	return nil
}

func (app *Application) countWebhookEvent(ctx context.Context, outcome string) {
	if app.webhookEvents == nil {
		return
	}

	app.webhookEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (app *Application) webhookOverrides() webhook.Table {
	return webhook.Table{
		stripe.EventTypeCustomerCreated:          webhook.Func(app.logCustomerCreated),
		stripe.EventTypeCustomerDeleted:          webhook.Func(app.unlinkDeletedCustomer),
		stripe.EventTypeCheckoutSessionCompleted: webhook.Named(receiptHandler),
	}
}

func (app *Application) webhookRegistry() webhook.Registry {
	return webhook.Registry{
		receiptHandler: app.sendReceipt,
	}
}

func (app *Application) logCustomerCreated(ctx context.Context, data *stripe.EventData) error {
	var c stripe.Customer

	err := decodeEventData(data, &c)
	if err != nil {
		return err
	}

	binding, err := app.customerRepo.GetByCustomerId(ctx, c.ID)
	switch {
	case err == nil:
		app.logger.InfoContext(ctx, "stripe customer created", "customer", c.ID, "user_id", binding.UserID)
	case errors.Is(err, domain.ErrRecordNotFound):
		// Created from the dashboard, or the binding is not committed yet.
		app.logger.InfoContext(ctx, "stripe customer created", "customer", c.ID, "bound", false)
	default:
		return err
	}

	return nil
}

// unlinkDeletedCustomer drops the binding of a customer removed from the
// Stripe dashboard so the next checkout does not reference it.
func (app *Application) unlinkDeletedCustomer(ctx context.Context, data *stripe.EventData) error {
	var c stripe.Customer

	err := decodeEventData(data, &c)
	if err != nil {
		return err
	}

	return app.customers.Unlink(ctx, c.ID)
}

// sendReceipt mails a receipt for a completed checkout session. A failed send
// is returned so Stripe retries the event.
func (app *Application) sendReceipt(ctx context.Context, data *stripe.EventData) error {
	var session stripe.CheckoutSession

	err := decodeEventData(data, &session)
	if err != nil {
		return err
	}

	recipient := session.CustomerEmail
	if recipient == "" && session.CustomerDetails != nil {
		recipient = session.CustomerDetails.Email
	}

	if recipient == "" {
		app.logger.WarnContext(ctx, "completed checkout session has no email, skipping receipt", "session_id", session.ID)
		return nil
	}

	receipt := map[string]any{
		"Total":     decimal.New(session.AmountTotal, -2).StringFixed(2),
		"Currency":  strings.ToUpper(string(session.Currency)),
		"SessionID": session.ID,
	}

	err = app.mailer.Send(recipient, receiptTemplate, receipt)
	if err != nil {
		return fmt.Errorf("sending receipt for %s: %w", session.ID, err)
	}

	app.logger.InfoContext(ctx, "receipt sent", "session_id", session.ID)

	return nil
}
