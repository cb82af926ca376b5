package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var _ ports.EventSink = LogSink{}

// LogSink writes events to the log. It is used when no broker is configured.
type LogSink struct {
	Log zerolog.Logger
}

func (s LogSink) Publish(_ context.Context, event domain.TransactionEvent) error {
	s.Log.Info().
		Str("kind", string(event.Kind)).
		Str("tracking_id", event.TrackingID).
		Int64("client_id", event.ClientID).
		Int("status_id", event.StatusID).
		Time("occurred_at", event.OccurredAt).
		Msg("transaction event")
	return nil
}
