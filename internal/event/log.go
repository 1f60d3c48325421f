package event

import (
	"context"
	"log/slog"

	"github.com/utafrali/storefront/pkg/logger"
)

// Log writes every event as a structured log line.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging notifier.
func NewLog(l *slog.Logger) *Log {
	return &Log{logger: l}
}

// Notify logs e at info level.
func (n *Log) Notify(ctx context.Context, e Event) {
	attrs := []any{slog.String("kind", string(e.Kind))}
	if e.ProductID != "" {
		attrs = append(attrs, slog.String("product_id", e.ProductID))
	}
	if e.Quantity != 0 {
		attrs = append(attrs, slog.Int("quantity", e.Quantity))
	}
	if e.Action != "" {
		attrs = append(attrs, slog.String("action", string(e.Action)))
	}
	logger.WithContext(ctx, n.logger).InfoContext(ctx, "storefront event", attrs...)
}
