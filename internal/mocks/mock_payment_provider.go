package mocks

import (
	"context"

	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProcessor struct {
	mock.Mock
	domain.PaymentProcessor
}

func (m *MockPaymentProcessor) CreateCheckoutSession(
	ctx context.Context,
	params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {

	args := m.Called(ctx, params)
	session, _ := args.Get(0).(*stripe.CheckoutSession)
	return session, args.Error(1)
}

func (m *MockPaymentProcessor) CreatePaymentIntent(
	ctx context.Context,
	params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {

	args := m.Called(ctx, params)
	intent, _ := args.Get(0).(*stripe.PaymentIntent)
	return intent, args.Error(1)
}

func (m *MockPaymentProcessor) GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*stripe.CheckoutSession)
	return session, args.Error(1)
}

func (m *MockPaymentProcessor) GetPaymentIntent(
	ctx context.Context,
	id string,
	expand ...string) (*stripe.PaymentIntent, error) {

	args := m.Called(ctx, id, expand)
	intent, _ := args.Get(0).(*stripe.PaymentIntent)
	return intent, args.Error(1)
}

func (m *MockPaymentProcessor) CreateCustomer(
	ctx context.Context,
	params *stripe.CustomerParams) (*stripe.Customer, error) {

	args := m.Called(ctx, params)
	customer, _ := args.Get(0).(*stripe.Customer)
	return customer, args.Error(1)
}

func (m *MockPaymentProcessor) UpdateCustomer(
	ctx context.Context,
	id string,
	params *stripe.CustomerParams) (*stripe.Customer, error) {

	args := m.Called(ctx, id, params)
	customer, _ := args.Get(0).(*stripe.Customer)
	return customer, args.Error(1)
}

func (m *MockPaymentProcessor) DeleteCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	args := m.Called(ctx, id)
	customer, _ := args.Get(0).(*stripe.Customer)
	return customer, args.Error(1)
}
