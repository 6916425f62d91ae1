package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/stripe-checkout/internal/domain"
)

// GetCurrentUser returns the logged in user together with the Stripe customer
// bound to it, if any.
func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.logger.Error("User ID in session but not found in DB", "userId", userId)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := userResponse(user)

	binding, err := app.customerRepo.GetByUserId(r.Context(), userId)
	switch {
	case err == nil:
		resp.CustomerId = &binding.CustomerID
	case !errors.Is(err, domain.ErrRecordNotFound):
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
