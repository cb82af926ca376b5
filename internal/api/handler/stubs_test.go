package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Admin, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.Admin, error)
	registers  int
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Admin, error) {
	s.registers++
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	return s.loginFn(ctx, username, password)
}

type stubClientService struct {
	ports.ClientService
	createFn func(ctx context.Context, in ports.ClientInput) (*domain.Client, error)
	listFn   func(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Client], error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubClientService) CreateClient(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	return s.createFn(ctx, in)
}

func (s *stubClientService) ListClients(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Client], error) {
	return s.listFn(ctx, page)
}

func (s *stubClientService) DeleteClient(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubTransactionService struct {
	ports.TransactionService
	listFn   func(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Transaction], error)
	createFn func(ctx context.Context, in ports.CreateTransactionInput) (*ports.TransactionResult, error)
	updateFn func(ctx context.Context, in ports.UpdateTransactionInput) (*domain.Transaction, error)
}

func (s *stubTransactionService) ListTransactions(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Transaction], error) {
	return s.listFn(ctx, page)
}

func (s *stubTransactionService) CreateTransaction(ctx context.Context, in ports.CreateTransactionInput) (*ports.TransactionResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubTransactionService) UpdateTransaction(ctx context.Context, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
	return s.updateFn(ctx, in)
}

type stubHistoryService struct {
	ports.HistoryService
	listFn func(ctx context.Context, filter ports.HistoryFilter) (ports.Page[*domain.HistoryEntry], error)
}

func (s *stubHistoryService) ListHistory(ctx context.Context, filter ports.HistoryFilter) (ports.Page[*domain.HistoryEntry], error) {
	return s.listFn(ctx, filter)
}
