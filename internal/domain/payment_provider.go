package domain

import (
	"context"

	"github.com/stripe/stripe-go/v82"
)

// PaymentProcessor is the set of Stripe operations the checkout flow depends on.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
	GetPaymentIntent(ctx context.Context, id string, expand ...string) (*stripe.PaymentIntent, error)

	CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error)
	UpdateCustomer(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error)
	DeleteCustomer(ctx context.Context, id string) (*stripe.Customer, error)
}
