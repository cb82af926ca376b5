package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

func TestClientHandler_Create(t *testing.T) {
	stub := &stubClientService{
		createFn: func(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
			if in.Name != "Acme" || in.IsActive {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Client{ID: 7, Name: in.Name, Email: in.Email, IsActive: in.IsActive}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/clients",
		`{"clientName":"Acme","email":"ops@acme.test","isActive":false}`)

	if err := NewClientHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp createClientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Client added successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.Client.ClientID != 7 || resp.Client.Status != "Inactive" {
		t.Fatalf("unexpected client: %+v", resp.Client)
	}
}

func TestClientHandler_Create_MissingIsActive(t *testing.T) {
	stub := &stubClientService{}
	c, _ := newContext(http.MethodPost, "/api/clients", `{"clientName":"Acme","email":"ops@acme.test"}`)

	if err := NewClientHandler(stub).Create(c); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClientHandler_List_Pagination(t *testing.T) {
	stub := &stubClientService{
		listFn: func(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Client], error) {
			if page.Page != 2 || page.Limit != 10 {
				t.Fatalf("unexpected page request: %+v", page)
			}
			items := make([]*domain.Client, 10)
			for i := range items {
				items[i] = &domain.Client{ID: int64(11 + i), Name: "c", IsActive: true}
			}
			return ports.NewPage(items, 25, page), nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/clients?page=2&limit=10", "")

	if err := NewClientHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp clientListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Clients) != 10 || resp.Total != 25 || resp.Page != 2 || resp.TotalPages != 3 {
		t.Fatalf("unexpected page: %d items, total %d, page %d, totalPages %d",
			len(resp.Clients), resp.Total, resp.Page, resp.TotalPages)
	}
}

func TestClientHandler_Delete_InvalidID(t *testing.T) {
	stub := &stubClientService{
		deleteFn: func(ctx context.Context, id int64) error {
			t.Fatalf("service must not be called")
			return nil
		},
	}
	c, _ := newContext(http.MethodDelete, "/api/clients/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := NewClientHandler(stub).Delete(c); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClientHandler_Delete_NotFound(t *testing.T) {
	stub := &stubClientService{
		deleteFn: func(ctx context.Context, id int64) error { return domain.ErrClientNotFound },
	}
	c, _ := newContext(http.MethodDelete, "/api/clients/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := NewClientHandler(stub).Delete(c); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
