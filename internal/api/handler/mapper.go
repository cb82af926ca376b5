package handler

import (
	"github.com/uscl/transaction-tracker/internal/core/domain"
)

// --- Domain → HTTP response ---

func toAdminResponse(a *domain.Admin) adminResponse {
	return adminResponse{
		AdminID:   a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		RoleFlags: a.Role.Flags(),
		CreatedAt: a.CreatedAt,
	}
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ClientID:   c.ID,
		ClientName: c.Name,
		Email:      c.Email,
		IsActive:   c.IsActive,
		Status:     c.StatusLabel(),
		CreatedAt:  c.CreatedAt,
	}
}

func toTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		TrackingID:       t.TrackingID,
		ClientID:         t.ClientID,
		ClientName:       t.ClientName,
		TrackingMessage:  t.Message,
		TrackingStatusID: t.StatusID,
		StatusName:       t.StatusName,
		Description:      t.Description,
		CreatedAt:        t.CreatedAt,
	}
}

func toHistoryResponse(h *domain.HistoryEntry) historyResponse {
	return historyResponse{
		HistoryID:        h.ID,
		TrackingID:       h.TrackingID,
		ClientID:         h.ClientID,
		ClientName:       h.ClientName,
		TrackingMessage:  h.Message,
		Description:      h.Description,
		TrackingStatusID: h.StatusID,
		StatusName:       h.StatusName,
		CreatedAt:        h.CreatedAt,
		ChangedAt:        h.ChangedAt,
	}
}

// mapAll converts a slice, never returning nil so lists encode as [].
func mapAll[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
