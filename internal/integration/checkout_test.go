package integration_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/metinatakli/stripe-checkout/api"
	"github.com/metinatakli/stripe-checkout/internal/app"
	"github.com/metinatakli/stripe-checkout/internal/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const checkoutBody = `{"items": [{"price": "price_1QaBcD", "quantity": 2}]}`

type SessionCheckoutTestSuite struct {
	BaseSuite
}

func TestSessionCheckoutSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(SessionCheckoutTestSuite))
}

func newCheckoutRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func decodeArtifact(t testing.TB, res *http.Response) checkout.ArtifactResponse {
	var artifact checkout.ArtifactResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&artifact))

	return artifact
}

func sessionIDFromURL(t testing.TB, url string) string {
	const prefix = "https://checkout.stripe.com/c/pay/"
	require.True(t, strings.HasPrefix(url, prefix), "unexpected checkout url %q", url)

	return strings.TrimPrefix(url, prefix)
}

func (s *SessionCheckoutTestSuite) TestGetCheckoutPage() {
	res := s.app.serve(httptest.NewRequest(http.MethodGet, "/checkout", nil))
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	compareResponse(s.T(), res.Body, fmt.Sprintf(`{
		"publishableKey": %q,
		"flow": "session",
		"uiMode": "hosted",
		"template": "checkouts/checkout-hosted.html",
		"currency": "usd"
	}`, TestPublicKey))
}

func (s *SessionCheckoutTestSuite) TestAnonymousSessionCompletes() {
	res := s.app.serve(newCheckoutRequest(checkoutBody))
	defer res.Body.Close()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	sessionID := sessionIDFromURL(s.T(), decodeArtifact(s.T(), res).CheckoutSessionURL)

	session, err := s.app.Processor.GetCheckoutSession(context.Background(), sessionID)
	s.Require().NoError(err)
	s.Nil(session.Customer, "anonymous session should not carry a customer")

	s.app.Processor.CompleteSession(sessionID, TestUserEmail, 15000)

	res = s.app.serve(httptest.NewRequest(http.MethodGet, "/checkout/return?session_id="+sessionID, nil))
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	compareResponse(s.T(), res.Body, fmt.Sprintf(`{
		"status": "complete",
		"customerEmail": %q,
		"total": 15000
	}`, TestUserEmail))
}

func (s *SessionCheckoutTestSuite) TestSessionCarriesBoundCustomer() {
	truncateUsers(s.T(), s.app.DB)
	userID := insertTestUser(s.T(), s.app.DB, defaultTestUser(s.T()))
	insertTestCustomer(s.T(), s.app.DB, userID, "cus_bound")

	cookies := s.app.login(s.T(), TestUserEmail, TestUserPassword)

	res := s.app.serve(newCheckoutRequest(checkoutBody), cookies...)
	defer res.Body.Close()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	sessionID := sessionIDFromURL(s.T(), decodeArtifact(s.T(), res).CheckoutSessionURL)

	session, err := s.app.Processor.GetCheckoutSession(context.Background(), sessionID)
	s.Require().NoError(err)
	s.Require().NotNil(session.Customer)
	s.Equal("cus_bound", session.Customer.ID)
}

func (s *SessionCheckoutTestSuite) TestExpiredSessionFlashesOnCheckoutPage() {
	res := s.app.serve(newCheckoutRequest(checkoutBody))
	defer res.Body.Close()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	sessionID := sessionIDFromURL(s.T(), decodeArtifact(s.T(), res).CheckoutSessionURL)
	s.app.Processor.ExpireSession(sessionID)

	res = s.app.serve(httptest.NewRequest(http.MethodGet, "/checkout/return?session_id="+sessionID, nil))
	defer res.Body.Close()

	s.Require().Equal(http.StatusSeeOther, res.StatusCode)
	s.Equal("/checkout", res.Header.Get("Location"))

	cookies := res.Cookies()
	s.Require().NotEmpty(cookies, "flash requires a session cookie")

	for _, want := range []*string{stringPtr(checkout.MessageSessionExpired), nil} {
		page := s.app.serve(httptest.NewRequest(http.MethodGet, "/checkout", nil), cookies...)

		var resp api.CheckoutPageResponse
		s.Require().NoError(json.NewDecoder(page.Body).Decode(&resp))
		page.Body.Close()

		s.Equal(want, resp.Message)
	}
}

func (s *SessionCheckoutTestSuite) TestRejectedSessionRedirectsToReferer() {
	s.app.Processor.Err = errors.New("stripe unavailable")
	defer func() { s.app.Processor.Err = nil }()

	req := newCheckoutRequest(checkoutBody)
	req.Header.Set("Referer", "http://shop.test/cart")

	res := s.app.serve(req)
	defer res.Body.Close()

	s.Equal(http.StatusSeeOther, res.StatusCode)
	s.Equal("http://shop.test/cart", res.Header.Get("Location"))
}

func (s *SessionCheckoutTestSuite) TestInvalidItemsAreRejected() {
	res := s.app.serve(newCheckoutRequest(`{"items": [{"price": "prod_1", "quantity": 0}]}`))
	defer res.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	compareResponse(s.T(), res.Body, `{
		"message": "One or more fields are invalid",
		"validationErrors": [
			{"field": "Price", "issue": "must be a stripe price id (price_...)"},
			{"field": "Quantity", "issue": "must be greater than 0"}
		]
	}`)
}

type IntentCheckoutTestSuite struct {
	BaseSuite
}

func TestIntentCheckoutSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(IntentCheckoutTestSuite))
}

func (s *IntentCheckoutTestSuite) SetupSuite() {
	s.setupSuite(func(cfg *app.Config) {
		cfg.Checkout.Flow = "intent"
		cfg.Checkout.AutomaticMethods = true
	})
}

func (s *IntentCheckoutTestSuite) TestIntentForBoundCustomer() {
	customerID := seedCustomer(s.T(), s.app)
	cookies := s.app.login(s.T(), TestUserEmail, TestUserPassword)

	body := `{"amount": 1500, "description": "Two tickets"}`

	var secrets []string
	for range 2 {
		req := newCheckoutRequest(body)
		req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")

		res := s.app.serve(req, cookies...)
		s.Require().Equal(http.StatusOK, res.StatusCode)

		artifact := decodeArtifact(s.T(), res)
		res.Body.Close()

		s.Require().NotNil(artifact.Appearance)
		s.Equal(checkout.DefaultAppearance, *artifact.Appearance)
		secrets = append(secrets, artifact.ClientSecret)
	}

	keys := s.app.Processor.IdempotencyKeys
	s.Require().GreaterOrEqual(len(keys), 2)
	s.Equal(keys[len(keys)-2], keys[len(keys)-1], "identical requests should share an idempotency key")
	s.Len(keys[len(keys)-1], 64)

	intentID := strings.TrimSuffix(secrets[1], "_secret")

	intent, err := s.app.Processor.GetPaymentIntent(context.Background(), intentID)
	s.Require().NoError(err)
	s.Equal("brl", string(intent.Currency))
	s.Require().NotNil(intent.Customer)
	s.Equal(customerID, intent.Customer.ID)

	query := fmt.Sprintf("/checkout/return?payment_intent=%s&payment_intent_client_secret=%s", intentID, secrets[1])
	res := s.app.serve(httptest.NewRequest(http.MethodGet, query, nil))
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	compareResponse(s.T(), res.Body, fmt.Sprintf(`{
		"status": "requires_payment_method",
		"customerEmail": %q,
		"total": 15.00
	}`, TestUserEmail))
}

func (s *IntentCheckoutTestSuite) TestReturnWithoutClientSecretFlashes() {
	res := s.app.serve(httptest.NewRequest(http.MethodGet, "/checkout/return?payment_intent=pi_test_1", nil))
	defer res.Body.Close()

	assert.Equal(s.T(), http.StatusSeeOther, res.StatusCode)
	assert.Equal(s.T(), "/checkout", res.Header.Get("Location"))
}

func stringPtr(s string) *string {
	return &s
}
