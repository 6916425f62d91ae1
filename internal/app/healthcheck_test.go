package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/stripe-checkout/api"
)

func TestGetHealth(t *testing.T) {
	app := newTestApplication()

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var got api.HealthcheckResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	want := api.HealthcheckResponse{
		Status: "UP",
		SystemInfo: api.SystemInfo{
			Environment: "test",
			Version:     version,
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should report unknown path",
			method:         http.MethodGet,
			path:           "/movies",
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:       "should report unsupported method",
			method:     http.MethodDelete,
			path:       "/healthcheck",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	app := newTestApplication()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			app.Routes().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}
