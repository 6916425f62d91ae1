package integration_test

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WebhookTestSuite struct {
	BaseSuite
}

func TestWebhookSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(WebhookTestSuite))
}

func webhookPayload(eventType, object string) []byte {
	return []byte(fmt.Sprintf(`{"id": "evt_1", "object": "event", "type": %q, "data": {"object": %s}}`, eventType, object))
}

func (s *WebhookTestSuite) TestStripeWebhook() {
	deleted := webhookPayload("customer.deleted", `{"id": "cus_gone", "object": "customer", "deleted": true}`)
	completed := webhookPayload("checkout.session.completed", `{
		"id": "cs_test_42", "object": "checkout.session", "amount_total": 4250,
		"currency": "brl", "customer_details": {"email": "test@example.com"}
	}`)
	unsupported := webhookPayload("invoice.paid", `{"id": "in_1", "object": "invoice"}`)

	scenarios := []Scenario{
		{
			Name:           "rejects an unsigned payload",
			Method:         "POST",
			URL:            "/checkout/webhook",
			Body:           bytes.NewReader(deleted),
			ExpectedStatus: 400,
		},
		{
			Name:             "unlinks a customer deleted on stripe",
			Method:           "POST",
			URL:              "/checkout/webhook",
			Body:             bytes.NewReader(deleted),
			Headers:          signedWebhookHeaders(deleted),
			ExpectedStatus:   200,
			ExpectedResponse: `{"success": true}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateUsers(t, app.DB)
				userID := insertTestUser(t, app.DB, defaultTestUser(t))
				insertTestCustomer(t, app.DB, userID, "cus_gone")
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				require.Zero(t, countCustomers(t, app.DB, 1), "binding should be removed")

				var users int
				require.NoError(t, app.DB.QueryRow(t.Context(), "SELECT COUNT(*) FROM users").Scan(&users))
				require.Equal(t, 1, users, "user should be kept")
			},
		},
		{
			Name:             "mails a receipt for a completed session",
			Method:           "POST",
			URL:              "/checkout/webhook",
			Body:             bytes.NewReader(completed),
			Headers:          signedWebhookHeaders(completed),
			ExpectedStatus:   200,
			ExpectedResponse: `{"success": true}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				app.Mailer.Reset()
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				emails := app.Mailer.Deliveries()
				require.Len(t, emails, 1)
				require.Equal(t, TestUserEmail, emails[0].Recipient)
				require.Equal(t, "payment_receipt.tmpl", emails[0].Template)
				require.Equal(t, map[string]any{
					"Total":     "42.50",
					"Currency":  "BRL",
					"SessionID": "cs_test_42",
				}, emails[0].Data)
			},
		},
		{
			Name:             "does not acknowledge an unsupported event",
			Method:           "POST",
			URL:              "/checkout/webhook",
			Body:             bytes.NewReader(unsupported),
			Headers:          signedWebhookHeaders(unsupported),
			ExpectedStatus:   200,
			ExpectedResponse: `{"success": false}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
