package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/uscl/transaction-tracker/internal/core/ports"
)

// IdempotencyHeader lets clients retry POST /api/transactions safely.
const IdempotencyHeader = "Idempotency-Key"

// TransactionHandler handles HTTP requests for transaction operations.
type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// List handles GET /api/transactions.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  transactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	page, err := h.service.ListTransactions(c.Request().Context(), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionListResponse{
		Transactions: mapAll(page.Items, toTransactionResponse),
		Total:        page.Total,
		Page:         page.Page,
		TotalPages:   page.TotalPages,
	})
}

// Get handles GET /api/transactions/:trackingId.
//
// @Summary      Get a transaction by tracking ID
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        trackingId  path      string  true  "Tracking ID (e.g. TRX-LZ3K9Q-0A1B2C)"
// @Success      200         {object}  transactionResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /api/transactions/{trackingId} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	tx, err := h.service.GetTransaction(c.Request().Context(), c.Param("trackingId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// Create handles POST /api/transactions. The tracking ID is generated
// server-side. A repeated Idempotency-Key returns the original transaction
// with 200 instead of creating a second one.
//
// @Summary      Create a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      transactionRequest  true   "Transaction details"
// @Success      200              {object}  transactionResponse
// @Success      201              {object}  transactionResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	var req transactionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.CreateTransaction(c.Request().Context(), ports.CreateTransactionInput{
		ClientID:       req.ClientID,
		Message:        req.TrackingMessage,
		StatusID:       req.TrackingStatusID,
		Description:    req.Description,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(IdempotencyHeader)),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	c.Response().Header().Set(echo.HeaderLocation, "/api/transactions/"+result.Transaction.TrackingID)
	return c.JSON(status, toTransactionResponse(result.Transaction))
}

// Update handles PUT /api/transactions/:trackingId.
//
// @Summary      Update a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        trackingId  path      string              true  "Tracking ID"
// @Param        body        body      transactionRequest  true  "New transaction state"
// @Success      200         {object}  transactionResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /api/transactions/{trackingId} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	var req transactionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tx, err := h.service.UpdateTransaction(c.Request().Context(), ports.UpdateTransactionInput{
		TrackingID:  c.Param("trackingId"),
		ClientID:    req.ClientID,
		Message:     req.TrackingMessage,
		StatusID:    req.TrackingStatusID,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// Delete handles DELETE /api/transactions/:trackingId.
//
// @Summary      Delete a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        trackingId  path      string  true  "Tracking ID"
// @Success      200         {object}  messageResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /api/transactions/{trackingId} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteTransaction(c.Request().Context(), c.Param("trackingId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Transaction deleted successfully"})
}

// Statuses handles GET /api/statuses.
//
// @Summary      List transaction statuses
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusListResponse
// @Router       /api/statuses [get]
func (h *TransactionHandler) Statuses(c echo.Context) error {
	statuses, err := h.service.ListStatuses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusListResponse{Statuses: statuses})
}
