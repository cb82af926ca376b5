// Package service holds the use cases behind the HTTP handlers: auth,
// admin and client management, transactions with their tracking
// identifiers, and the transaction history.
package service

import "github.com/uscl/transaction-tracker/internal/core/ports"

var (
	_ ports.AuthService        = (*AuthService)(nil)
	_ ports.AdminService       = (*AdminService)(nil)
	_ ports.ClientService      = (*ClientService)(nil)
	_ ports.TransactionService = (*TransactionService)(nil)
	_ ports.HistoryService     = (*HistoryService)(nil)
)
