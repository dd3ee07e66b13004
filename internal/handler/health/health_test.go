package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playperu/formrelay/internal/handler/health"
)

type mockChecker struct{ err error }

func (m mockChecker) Check(_ context.Context) error { return m.err }

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]health.Checker
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"relay": "ok"},
		},
		{
			name:       "endpoint up",
			checks:     map[string]health.Checker{"endpoint": mockChecker{}},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"relay": "ok", "endpoint": "ok"},
		},
		{
			name:       "endpoint down",
			checks:     map[string]health.Checker{"endpoint": mockChecker{err: errors.New("refused")}},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"relay": "ok", "endpoint": "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(slog.Default(), tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body map[string]health.Result
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if len(body) != len(tt.wantBody) {
				t.Errorf("got %d checks, want %d: %v", len(body), len(tt.wantBody), body)
			}
			for name, want := range tt.wantBody {
				if got := body[name].Status; got != want {
					t.Errorf("%s status = %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestEndpointChecker(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c, err := health.Endpoint(srv.URL + "/reports/submit")
	if err != nil {
		t.Fatalf("Endpoint: %v", err)
	}
	if err := c.Check(context.Background()); err != nil {
		t.Errorf("check on live server: %v", err)
	}

	srv.Close()
	if err := c.Check(context.Background()); err == nil {
		t.Error("expected error after server closed")
	}
}
