package domain

import (
	"regexp"
	"time"
)

// TrackingIDPattern matches every identifier produced for a transaction.
var TrackingIDPattern = regexp.MustCompile(`^TRX-[0-9A-Z]+-[0-9A-F]{6}$`)

// Status is a row of the read-only status lookup table.
type Status struct {
	ID   int    `json:"statusId"`
	Name string `json:"statusName"`
}

// Transaction is the tracked aggregate. TrackingID is assigned once at
// creation and never changes.
type Transaction struct {
	TrackingID  string
	ClientID    int64
	ClientName  string // join, read-only
	Message     string
	StatusID    int
	StatusName  string // join, read-only
	Description *string
	CreatedAt   time.Time
}

// HistoryEntry is one append-only audit record of a transaction's state.
type HistoryEntry struct {
	ID          int64
	TrackingID  string
	ClientID    int64
	ClientName  string
	Message     string
	Description *string
	StatusID    int
	StatusName  string
	CreatedAt   time.Time
	ChangedAt   time.Time
}

// EventKind names what happened to a transaction.
type EventKind string

const (
	EventCreated EventKind = "transaction.created"
	EventUpdated EventKind = "transaction.updated"
	EventDeleted EventKind = "transaction.deleted"
)

// TransactionEvent is published after a transaction changes.
type TransactionEvent struct {
	Kind       EventKind `json:"kind"`
	TrackingID string    `json:"trackingId"`
	ClientID   int64     `json:"clientId"`
	StatusID   int       `json:"trackingStatusId"`
	Message    string    `json:"trackingMessage"`
	OccurredAt time.Time `json:"occurredAt"`
}
