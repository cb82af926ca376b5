package service

import (
	"context"
	"errors"
	"testing"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

func TestClientService_Create_Success(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, discardLogger)

	c, err := svc.CreateClient(context.Background(), ports.ClientInput{Name: " Acme ", Email: "ops@acme.test", IsActive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == 0 || c.Name != "Acme" || !c.IsActive {
		t.Fatalf("unexpected client: %+v", c)
	}
}

func TestClientService_Create_Conflict(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, discardLogger)

	in := ports.ClientInput{Name: "Acme", Email: "ops@acme.test", IsActive: true}
	_, _ = svc.CreateClient(context.Background(), in)
	if _, err := svc.CreateClient(context.Background(), in); !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
}

func TestClientService_Create_Validation(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), discardLogger)

	if _, err := svc.CreateClient(context.Background(), ports.ClientInput{Email: "x@y.z"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClientService_Update_NotFound(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, discardLogger)

	err := svc.UpdateClient(context.Background(), 99, ports.ClientInput{Name: "A", Email: "a@b.c"})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no update statement, got %d", repo.updates)
	}
}

func TestClientService_Update_ReplacesAllFields(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, discardLogger)
	c, _ := svc.CreateClient(context.Background(), ports.ClientInput{Name: "Acme", Email: "a@acme.test", IsActive: true})

	if err := svc.UpdateClient(context.Background(), c.ID, ports.ClientInput{Name: "Acme 2", Email: "b@acme.test", IsActive: false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.clients[c.ID]
	if got.Name != "Acme 2" || got.Email != "b@acme.test" || got.IsActive {
		t.Fatalf("unexpected stored client: %+v", got)
	}
}

func TestClientService_Delete_NotFoundIssuesNoDelete(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, discardLogger)

	if err := svc.DeleteClient(context.Background(), 42); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if repo.deletes != 0 {
		t.Fatalf("expected no delete statement, got %d", repo.deletes)
	}
}

func TestClientService_List_Pagination(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, discardLogger)
	for i := 0; i < 25; i++ {
		_, _ = repo.Create(context.Background(), &domain.Client{Name: "c", Email: string(rune('a'+i)) + "@x.test"})
	}

	page, err := svc.ListClients(context.Background(), ports.NewPageRequest(3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 5 || page.Total != 25 || page.TotalPages != 3 {
		t.Fatalf("unexpected page: items=%d total=%d pages=%d", len(page.Items), page.Total, page.TotalPages)
	}
}
