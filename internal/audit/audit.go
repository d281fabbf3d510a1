package audit

import (
	"context"
	"time"

	"github.com/dropDatabas3/falconbridge/internal/observability/logger"
	"go.uber.org/zap"
)

// Log writes a structured audit event through the request-scoped logger.
// Audit events are append-only log records, not a queryable store.
func Log(ctx context.Context, event string, fields map[string]any) {
	zfields := make([]zap.Field, 0, len(fields)+2)
	zfields = append(zfields,
		zap.String("event", event),
		zap.Time("ts", time.Now().UTC()),
	)
	for k, v := range fields {
		zfields = append(zfields, zap.Any(k, v))
	}
	logger.From(ctx).Named("audit").Info("audit", zfields...)
}
