package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/metinatakli/stripe-checkout/internal/repository"
	"github.com/stretchr/testify/require"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// login authenticates through the login endpoint and returns the session cookies.
func (a *TestApp) login(t testing.TB, email, password string) []*http.Cookie {
	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)

	req, err := prepareRequest(http.MethodPost, "/users/login", strings.NewReader(body), nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusNoContent, res.StatusCode, "login failed")
	require.NotEmpty(t, res.Cookies(), "login did not set a session cookie")

	return res.Cookies()
}

func defaultTestUser(t testing.TB) *domain.User {
	user := &domain.User{
		Username:  TestUsername,
		FirstName: TestUserFirstName,
		LastName:  TestUserLastName,
		Email:     TestUserEmail,
		Phone:     TestUserPhone,
	}

	require.NoError(t, user.Password.Set(TestUserPassword))

	return user
}

func insertTestUser(t testing.TB, db *pgxpool.Pool, user *domain.User) int {
	err := repository.NewPostgresUserRepository(db).Create(context.Background(), user)
	require.NoError(t, err)

	return user.ID
}

func insertTestCustomer(t testing.TB, db *pgxpool.Pool, userID int, customerID string) {
	_, err := db.Exec(context.Background(),
		`INSERT INTO stripe_customers (user_id, customer_id) VALUES ($1, $2)`, userID, customerID)
	require.NoError(t, err)
}

func truncateUsers(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE users, addresses, stripe_customers RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func countCustomers(t testing.TB, db *pgxpool.Pool, userID int) int {
	var count int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM stripe_customers WHERE user_id = $1", userID).Scan(&count)
	require.NoError(t, err)

	return count
}

func signedWebhookHeaders(payload []byte) map[string]string {
	signed := stripewebhook.GenerateTestSignedPayload(&stripewebhook.UnsignedPayload{
		Payload: payload,
		Secret:  TestWebhookSecret,
	})

	return map[string]string{"Stripe-Signature": signed.Header}
}

// serve runs req through the application router, attaching cookies first.
func (a *TestApp) serve(req *http.Request, cookies ...*http.Cookie) *http.Response {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.App.Routes().ServeHTTP(rec, req)

	return rec.Result()
}
