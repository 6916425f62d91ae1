package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/stripe-checkout/api"
	"github.com/metinatakli/stripe-checkout/internal/checkout"
	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/metinatakli/stripe-checkout/internal/mailer"
	"github.com/metinatakli/stripe-checkout/internal/mocks"
	"github.com/metinatakli/stripe-checkout/internal/validator"
)

const (
	ErrNotFound           = "The requested resource not found"
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrUnauthorized       = "You must be authenticated to access this resource"
	ErrInvalidCredentials = "Invalid authentication credentials"

	testPublicKey     = "pk_test_51HxYz"
	testSecretKey     = "sk_test_51HxYz"
	testWebhookSecret = "whsec_test123"
)

func testConfig() Config {
	var cfg Config

	cfg.Env = "test"
	cfg.Stripe.PublicKey = testPublicKey
	cfg.Stripe.SecretKey = testSecretKey
	cfg.Stripe.WebhookSecret = testWebhookSecret
	cfg.Checkout.Flow = string(checkout.FlowSession)
	cfg.Checkout.Mode = string(checkout.ModePayment)
	cfg.Checkout.UIMode = string(checkout.UIModeHosted)
	cfg.Checkout.ExpireMinutes = checkout.MinExpireMinutes
	cfg.Checkout.DefaultCurrency = "usd"

	return cfg
}

func noCustomer(ctx context.Context, userId int) (*domain.StripeCustomer, error) {
	return nil, domain.ErrRecordNotFound
}

// newTestApplication wires the checkout services after the options ran, so
// options replace collaborators rather than services.
func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:         testConfig(),
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		userRepo:       &mocks.MockUserRepo{},
		customerRepo:   &mocks.MockCustomerRepo{GetByUserIdFunc: noCustomer},
		processor:      &mocks.MockPaymentProcessor{},
		mailer:         mailer.NewMockMailer(),
	}

	for _, opt := range opts {
		opt(app)
	}

	err := app.wire()
	if err != nil {
		panic(err)
	}

	return app
}

func loadTestSession(t *testing.T, app *Application, r *http.Request) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	return r.WithContext(ctx)
}

func setupTestSession(t *testing.T, app *Application, r *http.Request, userId int) *http.Request {
	r = loadTestSession(t, app, r)

	app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), userId)

	return r
}

// withUserId mimics requireAuthentication for handlers called directly.
func withUserId(r *http.Request, userId int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKeyUserId, userId))
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if w.Code != tt.wantStatus {
		t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
	}

	if tt.wantStatus < 400 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
