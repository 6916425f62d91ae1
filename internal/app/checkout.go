package app

import (
	"net/http"
	"time"

	"github.com/metinatakli/stripe-checkout/api"
	"github.com/metinatakli/stripe-checkout/internal/checkout"
	appvalidator "github.com/metinatakli/stripe-checkout/internal/validator"
	"github.com/stripe/stripe-go/v82"
)

// GetCheckoutPage returns what the storefront needs to render the checkout
// markup. A message left by the return flow is shown once.
func (app *Application) GetCheckoutPage(w http.ResponseWriter, r *http.Request) {
	cfg := app.config.Checkout

	resp := api.CheckoutPageResponse{
		PublishableKey: app.config.Stripe.PublicKey,
		Flow:           cfg.Flow,
		UiMode:         cfg.UIMode,
		Template:       checkout.TemplateFor(checkout.Flow(cfg.Flow), checkout.UIMode(cfg.UIMode)),
		Currency:       app.currencies.Resolve(r.Header.Get("Accept-Language"), cfg.Currency),
	}

	if message, ok := app.popFlash(r.Context()); ok {
		resp.Message = &message
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	if checkout.Flow(app.config.Checkout.Flow) == checkout.FlowIntent {
		app.createPaymentIntent(w, r)
		return
	}

	app.createCheckoutSession(w, r)
}

func (app *Application) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var input api.CheckoutSessionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	lineItems := func() []*checkout.LineItem {
		items := make([]*checkout.LineItem, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, &checkout.LineItem{
				Price:    stripe.String(item.Price),
				Quantity: stripe.Int64(item.Quantity),
			})
		}

		return items
	}

	params, err := checkout.BuildSessionParameters(app.config.sessionConfig(requestOrigin(r), lineItems), time.Now())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	outcome, err := app.orchestrator.CreateSession(r.Context(), app.optionalUserId(r), params, app.failureTarget(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeOutcome(w, r, outcome)
}

func (app *Application) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var input api.PaymentIntentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	cfg := app.config.Checkout

	req := checkout.IntentRequest{
		Currency:         app.currencies.Resolve(r.Header.Get("Accept-Language"), cfg.Currency),
		AutomaticMethods: cfg.AutomaticMethods,
		MethodTypes:      cfg.MethodTypes,
		Extras: checkout.IntentExtras{
			Amount:      input.Amount,
			Description: appvalidator.SanitizeString(input.Description),
			Metadata:    input.Metadata,
		},
	}

	outcome, err := app.orchestrator.CreateIntent(r.Context(), app.optionalUserId(r), req, app.failureTarget(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeOutcome(w, r, outcome)
}

func (app *Application) failureTarget(r *http.Request) string {
	return checkout.FailureTarget(app.config.Checkout.FailureURL, r.Referer())
}

// writeOutcome redirects after a rejected create call and otherwise sends the
// artifact the checkout page mounts.
func (app *Application) writeOutcome(w http.ResponseWriter, r *http.Request, outcome checkout.Outcome) {
	if outcome.Failed() {
		http.Redirect(w, r, outcome.Redirect, http.StatusSeeOther)
		return
	}

	resp := checkout.ShapeResponse(outcome, checkout.UIMode(app.config.Checkout.UIMode), checkout.DefaultAppearance)

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	app.writeStatus(w, r, "success")
}

func (app *Application) CheckoutCancel(w http.ResponseWriter, r *http.Request) {
	app.writeStatus(w, r, "cancel")
}

func (app *Application) writeStatus(w http.ResponseWriter, r *http.Request, status string) {
	err := app.writeJSON(w, http.StatusOK, api.CheckoutStatusResponse{Status: status}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
