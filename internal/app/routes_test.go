package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/stripe-checkout/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesServeEveryContractOperation(t *testing.T) {
	swagger, err := api.GetSwagger()
	require.NoError(t, err)

	router, ok := newTestApplication().Routes().(chi.Routes)
	require.True(t, ok)

	routed := make(map[string]bool)
	err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routed[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for path, item := range swagger.Paths.Map() {
		for method := range item.Operations() {
			assert.True(t, routed[method+" "+path], "%s %s is not routed", method, path)
		}
	}
}

func TestSecuredOperationsRequireSession(t *testing.T) {
	swagger, err := api.GetSwagger()
	require.NoError(t, err)

	app := newTestApplication()
	handler := app.Routes()

	secured := 0
	for path, item := range swagger.Paths.Map() {
		for method, op := range item.Operations() {
			if op.Security == nil || len(*op.Security) == 0 {
				continue
			}
			secured++

			t.Run("should reject anonymous "+method+" "+path, func(t *testing.T) {
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(method, path, nil))

				checkErrorResponse(t, w, struct {
					wantStatus     int
					wantErrMessage string
				}{
					wantStatus:     http.StatusUnauthorized,
					wantErrMessage: ErrUnauthorized,
				})
			})
		}
	}

	assert.Equal(t, 4, secured)
}

func TestGetOpenAPISpec(t *testing.T) {
	app := newTestApplication()

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/checkout/return")
	assert.Contains(t, doc.Paths, "/customers/me")
}

func TestRoutesRejectRepeatedQueryParameter(t *testing.T) {
	app := newTestApplication()

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/return?session_id=cs_1&session_id=cs_2", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
