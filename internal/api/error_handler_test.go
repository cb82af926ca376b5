package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.NewValidationError("clientId required"), http.StatusBadRequest, "clientId required"},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, domain.ErrInvalidRole.Error()},
		{"wrapped invalid role", fmt.Errorf("register: %w", domain.ErrInvalidRole), http.StatusBadRequest, domain.ErrInvalidRole.Error()},
		{"invalid reference", fmt.Errorf("create transaction: %w", domain.ErrInvalidReference), http.StatusBadRequest, domain.ErrInvalidReference.Error()},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound, "transaction not found"},
		{"wrapped client not found", fmt.Errorf("x: %w", domain.ErrClientNotFound), http.StatusNotFound, "client not found"},
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict, "username already exists"},
		{"client in use", domain.ErrClientInUse, http.StatusConflict, "client still has transactions"},
		{"exhausted", domain.ErrTrackingIDExhausted, http.StatusInternalServerError, "could not allocate a unique tracking identifier"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["error"] != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body["error"])
			}
		})
	}
}
