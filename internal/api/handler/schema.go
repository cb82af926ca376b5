package handler

import (
	"time"

	"github.com/uscl/transaction-tracker/internal/core/domain"
)

// ErrorResponse is the error envelope rendered for every 4xx/5xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username     string `json:"username"     validate:"required,max=100"`
	Password     string `json:"password"     validate:"required"`
	Email        string `json:"email"        validate:"omitempty,email"`
	IsAdmin      bool   `json:"isAdmin"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
	IsDemo       bool   `json:"isDemo"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string        `json:"message"`
	Admin   adminResponse `json:"admin"`
}

type loginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Admin   adminResponse `json:"admin"`
}

// --- Admins ---

type adminResponse struct {
	AdminID  int64       `json:"adminId"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	domain.RoleFlags
	CreatedAt time.Time `json:"createdAt"`
}

type updateAdminRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

type adminListResponse struct {
	Admins     []adminResponse `json:"admins"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// --- Clients ---

type clientRequest struct {
	ClientName string `json:"clientName" validate:"required,max=200"`
	Email      string `json:"email"      validate:"required,email"`
	IsActive   *bool  `json:"isActive"   validate:"required"`
}

type clientResponse struct {
	ClientID   int64     `json:"clientId"`
	ClientName string    `json:"clientName"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"isActive"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type createClientResponse struct {
	Message string         `json:"message"`
	Client  clientResponse `json:"client"`
}

type clientListResponse struct {
	Clients    []clientResponse `json:"clients"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// --- Transactions ---

type transactionRequest struct {
	ClientID         int64   `json:"clientId"         validate:"required,gt=0"`
	TrackingMessage  string  `json:"trackingMessage"  validate:"required"`
	TrackingStatusID int     `json:"trackingStatusId" validate:"required,gt=0"`
	Description      *string `json:"description"`
}

type transactionResponse struct {
	TrackingID       string    `json:"trackingId"`
	ClientID         int64     `json:"clientId"`
	ClientName       string    `json:"clientName"`
	TrackingMessage  string    `json:"trackingMessage"`
	TrackingStatusID int       `json:"trackingStatusId"`
	StatusName       string    `json:"statusName"`
	Description      *string   `json:"description"`
	CreatedAt        time.Time `json:"createdAt"`
}

type transactionListResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"totalPages"`
}

type statusListResponse struct {
	Statuses []domain.Status `json:"statuses"`
}

// --- History ---

type historyResponse struct {
	HistoryID        int64     `json:"historyId"`
	TrackingID       string    `json:"trackingId"`
	ClientID         int64     `json:"clientId"`
	ClientName       string    `json:"clientName"`
	TrackingMessage  string    `json:"trackingMessage"`
	Description      *string   `json:"description"`
	TrackingStatusID int       `json:"trackingStatusId"`
	StatusName       string    `json:"statusName"`
	CreatedAt        time.Time `json:"createdAt"`
	ChangedAt        time.Time `json:"changedAt"`
}

type historyListResponse struct {
	History    []historyResponse `json:"history"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

type transactionHistoryResponse struct {
	TrackingID string            `json:"trackingId"`
	History    []historyResponse `json:"history"`
}
