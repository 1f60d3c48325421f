package event

import (
	"context"
	"log/slog"

	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

// Source identifies events produced by this application.
const Source = "storefront"

// defaultKey is the message key used when the context carries no session id.
const defaultKey = "storefront"

// Publisher is the subset of *pkgkafka.Producer used by Kafka.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Kafka publishes events to a topic. The session id from ctx is the message
// key. Failures are logged and dropped.
type Kafka struct {
	publisher Publisher
	topic     string
	logger    *slog.Logger
}

// NewKafka creates a Kafka notifier.
func NewKafka(p Publisher, topic string, l *slog.Logger) *Kafka {
	return &Kafka{
		publisher: p,
		topic:     topic,
		logger:    l,
	}
}

// Notify wraps e in an envelope and publishes it.
func (k *Kafka) Notify(ctx context.Context, e Event) {
	key := logger.SessionIDFromContext(ctx)
	if key == "" {
		key = defaultKey
	}

	envelope, err := pkgkafka.NewEvent(string(e.Kind), key, Source, e)
	if err != nil {
		k.logger.ErrorContext(ctx, "failed to build event envelope",
			slog.String("kind", string(e.Kind)),
			slog.String("error", err.Error()),
		)
		return
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		envelope.WithCorrelationID(id)
	}

	if err := k.publisher.Publish(ctx, k.topic, envelope); err != nil {
		k.logger.WarnContext(ctx, "dropping event after publish failure",
			slog.String("kind", string(e.Kind)),
			slog.String("error", err.Error()),
		)
	}
}
