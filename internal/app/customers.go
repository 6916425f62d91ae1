package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/stripe-checkout/api"
	"github.com/metinatakli/stripe-checkout/internal/customer"
	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

var errNoCustomer = errors.New("there is no stripe customer bound to the current user")

// CreateCustomer binds a Stripe customer to the current user. Calling it again
// returns the existing binding.
func (app *Application) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	binding, err := app.customers.Register(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCustomerAlreadyExists):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.CustomerResponse{
		CustomerId: binding.CustomerID,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input api.UpdateCustomerRequest

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

	if input.Email == nil && input.Name == nil && input.Phone == nil && input.Address == nil {
		app.badRequestResponse(w, r, fmt.Errorf("at least one field must be provided"))
		return
	}

	updated, err := app.customers.Update(r.Context(), userId, customer.Update{
		Email:   input.Email,
		Name:    input.Name,
		Phone:   input.Phone,
		Address: addressFromRequest(input.Address),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errNoCustomer)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, customerResponse(updated), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	err := app.customers.Delete(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errNoCustomer)
		case errors.Is(err, domain.ErrCustomerNotDeleted):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func customerResponse(c *stripe.Customer) api.CustomerResponse {
	resp := api.CustomerResponse{
		CustomerId: c.ID,
	}

	if c.Email != "" {
		resp.Email = &c.Email
	}
	if c.Name != "" {
		resp.Name = &c.Name
	}
	if c.Phone != "" {
		resp.Phone = &c.Phone
	}

	return resp
}
