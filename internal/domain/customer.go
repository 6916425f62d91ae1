package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StripeCustomer binds an application user to a Stripe customer. The
// idempotency key is a per-user secret mixed into payment intent keys.
type StripeCustomer struct {
	ID             int
	UserID         int
	CustomerID     string
	IdempotencyKey uuid.UUID
	CreatedAt      time.Time
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *StripeCustomer) error
	GetByUserId(ctx context.Context, userId int) (*StripeCustomer, error)
	GetByCustomerId(ctx context.Context, customerId string) (*StripeCustomer, error)
	DeleteByUserId(ctx context.Context, userId int) error
	DeleteByCustomerId(ctx context.Context, customerId string) error
}
