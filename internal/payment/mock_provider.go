package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/stripe/stripe-go/v82"
)

// MockProcessor keeps checkout artifacts in memory. It is used by the
// integration tests in place of the Stripe API.
type MockProcessor struct {
	mu        sync.Mutex
	seq       int
	sessions  map[string]*stripe.CheckoutSession
	intents   map[string]*stripe.PaymentIntent
	customers map[string]*stripe.Customer

	// Err, when set, is returned by every call.
	Err error

	IdempotencyKeys []string
}

func NewMockProcessor() *MockProcessor {
	return &MockProcessor{
		sessions:  make(map[string]*stripe.CheckoutSession),
		intents:   make(map[string]*stripe.PaymentIntent),
		customers: make(map[string]*stripe.Customer),
	}
}

func (m *MockProcessor) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s_test_%d", prefix, m.seq)
}

func (m *MockProcessor) CreateCheckoutSession(
	ctx context.Context,
	params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	id := m.nextID("cs")
	session := &stripe.CheckoutSession{
		ID:           id,
		Status:       stripe.CheckoutSessionStatusOpen,
		URL:          "https://checkout.stripe.com/c/pay/" + id,
		ClientSecret: id + "_secret",
		ExpiresAt:    stripe.Int64Value(params.ExpiresAt),
		UIMode:       stripe.CheckoutSessionUIMode(stripe.StringValue(params.UIMode)),
	}
	if params.Customer != nil {
		session.Customer = &stripe.Customer{ID: *params.Customer}
	}

	m.sessions[id] = session

	return session, nil
}

func (m *MockProcessor) CreatePaymentIntent(
	ctx context.Context,
	params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	if params.IdempotencyKey != nil {
		m.IdempotencyKeys = append(m.IdempotencyKeys, *params.IdempotencyKey)
	}

	id := m.nextID("pi")
	intent := &stripe.PaymentIntent{
		ID:           id,
		Amount:       stripe.Int64Value(params.Amount),
		Currency:     stripe.Currency(stripe.StringValue(params.Currency)),
		ClientSecret: id + "_secret",
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
	}
	if params.Customer != nil {
		intent.Customer = m.customers[*params.Customer]
	}

	m.intents[id] = intent

	return intent, nil
}

func (m *MockProcessor) GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	session, ok := m.sessions[id]
	if !ok {
		return nil, &stripe.Error{HTTPStatusCode: 404, Code: stripe.ErrorCodeResourceMissing, Msg: "No such checkout.session: " + id}
	}

	return session, nil
}

func (m *MockProcessor) GetPaymentIntent(
	ctx context.Context,
	id string,
	expand ...string) (*stripe.PaymentIntent, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	intent, ok := m.intents[id]
	if !ok {
		return nil, &stripe.Error{HTTPStatusCode: 404, Code: stripe.ErrorCodeResourceMissing, Msg: "No such payment_intent: " + id}
	}

	return intent, nil
}

func (m *MockProcessor) CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	id := m.nextID("cus")
	customer := &stripe.Customer{
		ID:       id,
		Email:    stripe.StringValue(params.Email),
		Name:     stripe.StringValue(params.Name),
		Phone:    stripe.StringValue(params.Phone),
		Metadata: params.Metadata,
	}

	m.customers[id] = customer

	return customer, nil
}

func (m *MockProcessor) UpdateCustomer(
	ctx context.Context,
	id string,
	params *stripe.CustomerParams) (*stripe.Customer, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	customer, ok := m.customers[id]
	if !ok {
		return nil, &stripe.Error{HTTPStatusCode: 404, Code: stripe.ErrorCodeResourceMissing, Msg: "No such customer: " + id}
	}

	if params.Email != nil {
		customer.Email = *params.Email
	}
	if params.Name != nil {
		customer.Name = *params.Name
	}
	if params.Phone != nil {
		customer.Phone = *params.Phone
	}

	return customer, nil
}

func (m *MockProcessor) DeleteCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	if _, ok := m.customers[id]; !ok {
		return nil, &stripe.Error{HTTPStatusCode: 404, Code: stripe.ErrorCodeResourceMissing, Msg: "No such customer: " + id}
	}

	delete(m.customers, id)

	return &stripe.Customer{ID: id, Deleted: true}, nil
}

// CompleteSession marks a session as paid, as Stripe does once the customer
// finishes checkout.
func (m *MockProcessor) CompleteSession(id, email string, amountTotal int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		session.Status = stripe.CheckoutSessionStatusComplete
		session.CustomerEmail = email
		session.AmountTotal = amountTotal
	}
}

func (m *MockProcessor) ExpireSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		session.Status = stripe.CheckoutSessionStatusExpired
	}
}
