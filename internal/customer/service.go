package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

// Update holds the customer fields a user may change. Nil fields are left
// untouched on Stripe.
type Update struct {
	Email   *string
	Name    *string
	Phone   *string
	Address *domain.Address
}

// Service keeps the local user to Stripe customer binding in sync with Stripe.
type Service struct {
	processor domain.PaymentProcessor
	customers domain.CustomerRepository
	validator *validator.Validate
	logger    *slog.Logger
}

func NewService(
	processor domain.PaymentProcessor,
	customers domain.CustomerRepository,
	validator *validator.Validate,
	logger *slog.Logger) *Service {

	return &Service{
		processor: processor,
		customers: customers,
		validator: validator,
		logger:    logger,
	}
}

// Register creates a Stripe customer for the user unless one is already bound.
func (s *Service) Register(ctx context.Context, user *domain.User) (*domain.StripeCustomer, error) {
	existing, err := s.customers.GetByUserId(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	idempotencyKey := uuid.New()

	params := &stripe.CustomerParams{
		Email:   stripe.String(user.Email),
		Name:    stripe.String(user.FullName()),
		Address: addressParams(user.Address),
	}
	if user.Phone != "" {
		params.Phone = stripe.String(user.Phone)
	}
	params.AddMetadata("username", user.Username)
	params.SetIdempotencyKey(idempotencyKey.String())

	created, err := s.processor.CreateCustomer(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: customer for user %d: %w", domain.ErrProcessorCreate, user.ID, err)
	}

	err = s.validator.Var(created.ID, "stripe_customer_id")
	if err != nil {
		return nil, fmt.Errorf("unexpected customer id %q: %w", created.ID, err)
	}

	binding := &domain.StripeCustomer{
		UserID:         user.ID,
		CustomerID:     created.ID,
		IdempotencyKey: idempotencyKey,
	}

	err = s.customers.Create(ctx, binding)
	if err != nil {
		return nil, s.discardCustomer(ctx, created.ID, err)
	}

	s.logger.Info("stripe customer registered", "user_id", user.ID, "customer", created.ID)

	return binding, nil
}

// discardCustomer deletes a Stripe customer whose binding could not be
// stored, so a failed registration leaves nothing behind on Stripe.
func (s *Service) discardCustomer(ctx context.Context, customerID string, cause error) error {
	_, err := s.processor.DeleteCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("orphaned stripe customer", "customer", customerID, "error", err)
		return errors.Join(cause, fmt.Errorf("deleting customer %s: %w", customerID, err))
	}

	s.logger.Warn("discarded stripe customer after failed binding", "customer", customerID, "error", cause)

	return cause
}

func (s *Service) Update(ctx context.Context, userID int, update Update) (*stripe.Customer, error) {
	binding, err := s.customers.GetByUserId(ctx, userID)
	if err != nil {
		return nil, err
	}

	params := &stripe.CustomerParams{
		Email:   update.Email,
		Name:    update.Name,
		Phone:   update.Phone,
		Address: addressParams(update.Address),
	}

	customer, err := s.processor.UpdateCustomer(ctx, binding.CustomerID, params)
	if err != nil {
		return nil, fmt.Errorf("updating customer %s: %w", binding.CustomerID, err)
	}

	return customer, nil
}

// Delete removes the customer on Stripe and then the local binding. The
// binding is kept when Stripe does not confirm the deletion.
func (s *Service) Delete(ctx context.Context, userID int) error {
	binding, err := s.customers.GetByUserId(ctx, userID)
	if err != nil {
		return err
	}

	deleted, err := s.processor.DeleteCustomer(ctx, binding.CustomerID)
	if err != nil {
		return fmt.Errorf("deleting customer %s: %w", binding.CustomerID, err)
	}

	if deleted == nil || !deleted.Deleted {
		return domain.ErrCustomerNotDeleted
	}

	err = s.customers.DeleteByUserId(ctx, userID)
	if err != nil {
		return err
	}

	s.logger.Info("stripe customer deleted", "user_id", userID, "customer", binding.CustomerID)

	return nil
}

// Unlink drops the local binding of a customer deleted on Stripe's side.
func (s *Service) Unlink(ctx context.Context, customerID string) error {
	err := s.customers.DeleteByCustomerId(ctx, customerID)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return err
	}

	s.logger.Info("stripe customer unlinked", "customer", customerID, "bound", err == nil)

	return nil
}

func addressParams(address *domain.Address) *stripe.AddressParams {
	if address == nil {
		return nil
	}

	params := &stripe.AddressParams{
		Country:    stripe.String(address.Country),
		State:      stripe.String(address.State),
		City:       stripe.String(address.City),
		PostalCode: stripe.String(address.PostalCode),
		Line1:      stripe.String(address.Line1),
	}
	if address.Line2 != "" {
		params.Line2 = stripe.String(address.Line2)
	}

	return params
}
