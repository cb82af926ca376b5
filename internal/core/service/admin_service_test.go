package service

import (
	"context"
	"errors"
	"testing"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

func seedAdmins(t *testing.T, repo *stubAdminRepo, names ...string) {
	t.Helper()
	for _, n := range names {
		if _, err := repo.Create(context.Background(), &domain.Admin{Username: n, Role: domain.RoleAdmin}); err != nil {
			t.Fatalf("seed %s: %v", n, err)
		}
	}
}

func TestAdminService_Update_UsernameTakenByOther(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmins(t, repo, "alice", "bob")
	svc := NewAdminService(repo, discardLogger)

	err := svc.UpdateAdmin(context.Background(), ports.UpdateAdminInput{ID: 2, Username: "alice", Email: "b@x.test"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAdminService_Update_OwnUsernameAllowed(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmins(t, repo, "alice")
	svc := NewAdminService(repo, discardLogger)

	if err := svc.UpdateAdmin(context.Background(), ports.UpdateAdminInput{ID: 1, Username: "alice", Email: "new@x.test"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.admins[1].Email != "new@x.test" {
		t.Fatalf("email not updated: %+v", repo.admins[1])
	}
}

func TestAdminService_Update_NotFound(t *testing.T) {
	svc := NewAdminService(newStubAdminRepo(), discardLogger)

	err := svc.UpdateAdmin(context.Background(), ports.UpdateAdminInput{ID: 5, Username: "x"})
	if !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestAdminService_Delete(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmins(t, repo, "alice")
	svc := NewAdminService(repo, discardLogger)

	if err := svc.DeleteAdmin(context.Background(), 7); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
	if repo.deletes != 0 {
		t.Fatalf("expected no delete for a missing admin, got %d", repo.deletes)
	}
	if err := svc.DeleteAdmin(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.admins[1]; ok {
		t.Fatal("admin still stored")
	}
}

func TestAdminService_List(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmins(t, repo, "a", "b", "c")
	svc := NewAdminService(repo, discardLogger)

	page, err := svc.ListAdmins(context.Background(), ports.NewPageRequest(1, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 3 || page.TotalPages != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
