package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name     string
		checks   []DependencyCheck
		wantCode int
		wantDeps map[string]string
	}{
		{
			name:     "all healthy",
			checks:   []DependencyCheck{{"postgres", ok}, {"redis", ok}},
			wantCode: http.StatusOK,
			wantDeps: map[string]string{"postgres": "ok", "redis": "ok"},
		},
		{
			name:     "redis down",
			checks:   []DependencyCheck{{"postgres", ok}, {"redis", down}},
			wantCode: http.StatusServiceUnavailable,
			wantDeps: map[string]string{"postgres": "ok", "redis": "unhealthy"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(tc.checks...).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			for name, want := range tc.wantDeps {
				if resp.Dependencies[name].Status != want {
					t.Fatalf("%s: expected %s, got %s", name, want, resp.Dependencies[name].Status)
				}
			}
		})
	}
}
