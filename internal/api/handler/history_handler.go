package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uscl/transaction-tracker/internal/core/ports"
)

// HistoryHandler serves the transaction audit trail.
type HistoryHandler struct {
	service ports.HistoryService
}

func NewHistoryHandler(service ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List handles GET /api/transaction-history.
//
// @Summary      List transaction history
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Page size (default 10, max 100)"
// @Param        clientName  query     string  false  "Case-insensitive client name substring"
// @Success      200         {object}  historyListResponse
// @Router       /api/transaction-history [get]
func (h *HistoryHandler) List(c echo.Context) error {
	page, err := h.service.ListHistory(c.Request().Context(), ports.HistoryFilter{
		ClientName: c.QueryParam("clientName"),
		Page:       parsePage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, historyListResponse{
		History:    mapAll(page.Items, toHistoryResponse),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /api/transaction-history/:trackingId.
//
// @Summary      Get the history of one transaction
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        trackingId  path      string  true  "Tracking ID"
// @Success      200         {object}  transactionHistoryResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /api/transaction-history/{trackingId} [get]
func (h *HistoryHandler) Get(c echo.Context) error {
	trackingID := c.Param("trackingId")
	entries, err := h.service.GetHistory(c.Request().Context(), trackingID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionHistoryResponse{
		TrackingID: trackingID,
		History:    mapAll(entries, toHistoryResponse),
	})
}

// Delete handles DELETE /api/transaction-history/:trackingId and removes
// every history entry of that transaction.
//
// @Summary      Delete the history of one transaction
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        trackingId  path      string  true  "Tracking ID"
// @Success      200         {object}  messageResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /api/transaction-history/{trackingId} [delete]
func (h *HistoryHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteHistory(c.Request().Context(), c.Param("trackingId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Transaction history deleted successfully"})
}
