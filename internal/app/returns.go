package app

import (
	"net/http"

	"github.com/metinatakli/stripe-checkout/api"
	"github.com/metinatakli/stripe-checkout/internal/checkout"
)

// CheckoutReturn shows the outcome of a finished checkout. Unfinished or
// unknown checkouts are sent back to the checkout page.
func (app *Application) CheckoutReturn(w http.ResponseWriter, r *http.Request, params api.CheckoutReturnParams) {
	result, err := app.returns.Resolve(r.Context(), checkout.ReturnQuery{
		SessionID:                 stringValue(params.SessionId),
		PaymentIntentID:           stringValue(params.PaymentIntent),
		PaymentIntentClientSecret: stringValue(params.PaymentIntentClientSecret),
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if result.Redirect() {
		app.putFlash(r.Context(), result.Message)

		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	resp := api.CheckoutReturnResponse{
		Status:        result.Outcome.Status,
		CustomerEmail: result.Outcome.CustomerEmail,
		Total:         result.Outcome.Total,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
