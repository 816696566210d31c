package events

import (
	"context"
	"log/slog"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

// LogPublisher is the default event sink: it logs every dispatched domain
// event with its name and payload. Events reach the sink only after the
// surrounding storage transaction has committed.
type LogPublisher struct{}

// NewLogPublisher creates a logging event sink.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Dispatch logs each event at info level.
func (p *LogPublisher) Dispatch(ctx context.Context, events ...domain.Event) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, event := range events {
		logger.Info("Domain event dispatched",
			slog.String("event", event.EventName()),
			slog.Time("occurred_at", event.OccurredAt()),
			slog.Any("payload", event),
		)
	}
}
