package mocks

import (
	"context"

	"github.com/metinatakli/stripe-checkout/internal/domain"
)

type MockCustomerRepo struct {
	domain.CustomerRepository
	CreateFunc             func(ctx context.Context, customer *domain.StripeCustomer) error
	GetByUserIdFunc        func(ctx context.Context, userId int) (*domain.StripeCustomer, error)
	GetByCustomerIdFunc    func(ctx context.Context, customerId string) (*domain.StripeCustomer, error)
	DeleteByUserIdFunc     func(ctx context.Context, userId int) error
	DeleteByCustomerIdFunc func(ctx context.Context, customerId string) error
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.StripeCustomer) error {
	return m.CreateFunc(ctx, customer)
}

func (m *MockCustomerRepo) GetByUserId(ctx context.Context, userId int) (*domain.StripeCustomer, error) {
	return m.GetByUserIdFunc(ctx, userId)
}

func (m *MockCustomerRepo) GetByCustomerId(ctx context.Context, customerId string) (*domain.StripeCustomer, error) {
	return m.GetByCustomerIdFunc(ctx, customerId)
}

func (m *MockCustomerRepo) DeleteByUserId(ctx context.Context, userId int) error {
	return m.DeleteByUserIdFunc(ctx, userId)
}

func (m *MockCustomerRepo) DeleteByCustomerId(ctx context.Context, customerId string) error {
	return m.DeleteByCustomerIdFunc(ctx, customerId)
}
