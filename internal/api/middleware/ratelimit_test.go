package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowed int
	hits    map[string]int
	err     error
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	if s.err != nil {
		return true, 0, s.err
	}
	if s.hits == nil {
		s.hits = map[string]int{}
	}
	s.hits[key]++
	if s.hits[key] > s.allowed {
		return false, 1500 * time.Millisecond, nil
	}
	return true, 0, nil
}

func (s *stubLimiter) Limit() int { return s.allowed }

func hit(t *testing.T, e *echo.Echo, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	e := echo.New()
	mw := RateLimit(&stubLimiter{allowed: 2}, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if rec := hit(t, e, mw); rec.Code != http.StatusOK {
			t.Fatalf("hit %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := hit(t, e, mw)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("expected Retry-After 2, got %q", got)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e := echo.New()
	mw := RateLimit(&stubLimiter{err: errors.New("redis down")}, zerolog.Nop())

	if rec := hit(t, e, mw); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when limiter errors, got %d", rec.Code)
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	e := echo.New()
	mw := RateLimit(nil, zerolog.Nop())

	for i := 0; i < 5; i++ {
		if rec := hit(t, e, mw); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}
