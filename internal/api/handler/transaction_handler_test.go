package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

const createBody = `{"clientId":3,"trackingMessage":"Order received","trackingStatusId":1}`

func TestTransactionHandler_Create(t *testing.T) {
	var got ports.CreateTransactionInput
	stub := &stubTransactionService{
		createFn: func(ctx context.Context, in ports.CreateTransactionInput) (*ports.TransactionResult, error) {
			got = in
			return &ports.TransactionResult{Transaction: &domain.Transaction{
				TrackingID: "TRX-LZ3K9Q-0A1B2C",
				ClientID:   in.ClientID,
				ClientName: "Acme",
				Message:    in.Message,
				StatusID:   in.StatusID,
				StatusName: "Pending",
				CreatedAt:  time.Now(),
			}}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/transactions", createBody)
	c.Request().Header.Set(IdempotencyHeader, "  order-42 ")

	if err := NewTransactionHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.IdempotencyKey != "order-42" {
		t.Fatalf("expected trimmed idempotency key, got %q", got.IdempotencyKey)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/transactions/TRX-LZ3K9Q-0A1B2C" {
		t.Fatalf("unexpected Location header: %q", loc)
	}

	var resp transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TrackingID != "TRX-LZ3K9Q-0A1B2C" || resp.StatusName != "Pending" || resp.Description != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTransactionHandler_Create_Replay(t *testing.T) {
	stub := &stubTransactionService{
		createFn: func(ctx context.Context, in ports.CreateTransactionInput) (*ports.TransactionResult, error) {
			return &ports.TransactionResult{
				Transaction:    &domain.Transaction{TrackingID: "TRX-LZ3K9Q-0A1B2C"},
				AlreadyExisted: true,
			}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/transactions", createBody)
	c.Request().Header.Set(IdempotencyHeader, "order-42")

	if err := NewTransactionHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_IgnoresClientTrackingID(t *testing.T) {
	stub := &stubTransactionService{
		createFn: func(ctx context.Context, in ports.CreateTransactionInput) (*ports.TransactionResult, error) {
			return &ports.TransactionResult{Transaction: &domain.Transaction{TrackingID: "TRX-LZ3K9Q-0A1B2C"}}, nil
		},
	}
	body := `{"trackingId":"TRX-MINE-FFFFFF","clientId":3,"trackingMessage":"m","trackingStatusId":1}`
	c, rec := newContext(http.MethodPost, "/api/transactions", body)

	if err := NewTransactionHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TrackingID != "TRX-LZ3K9Q-0A1B2C" {
		t.Fatalf("expected server-generated tracking id, got %q", resp.TrackingID)
	}
}

func TestTransactionHandler_Create_Validation(t *testing.T) {
	cases := map[string]string{
		"missing client":  `{"trackingMessage":"m","trackingStatusId":1}`,
		"missing message": `{"clientId":3,"trackingStatusId":1}`,
		"missing status":  `{"clientId":3,"trackingMessage":"m"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubTransactionService{
				createFn: func(ctx context.Context, in ports.CreateTransactionInput) (*ports.TransactionResult, error) {
					t.Fatalf("service must not be called")
					return nil, nil
				},
			}
			c, _ := newContext(http.MethodPost, "/api/transactions", body)

			if err := NewTransactionHandler(stub).Create(c); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestTransactionHandler_Update_UsesPathTrackingID(t *testing.T) {
	stub := &stubTransactionService{
		updateFn: func(ctx context.Context, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
			if in.TrackingID != "TRX-LZ3K9Q-0A1B2C" || in.StatusID != 2 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Transaction{TrackingID: in.TrackingID, StatusID: in.StatusID}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/api/transactions/TRX-LZ3K9Q-0A1B2C",
		`{"clientId":3,"trackingMessage":"Shipped","trackingStatusId":2}`)
	c.SetParamNames("trackingId")
	c.SetParamValues("TRX-LZ3K9Q-0A1B2C")

	if err := NewTransactionHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
