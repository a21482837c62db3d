package contracts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	appCtx "github.com/baechuer/events-api/internal/pkg/context"
)

// Publisher delivers an encoded envelope. messageID must be stable across
// retries of the same message.
type Publisher interface {
	PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error {
	return nil
}

// Emit wraps payload in an envelope and publishes it. Delivery is best
// effort: failures are logged and never returned to the caller.
func Emit[T any](ctx context.Context, pub Publisher, routingKey string, payload T, now time.Time) {
	if pub == nil {
		return
	}

	env := DomainEventEnvelope[T]{
		Version:    Version,
		Producer:   Producer,
		MessageID:  uuid.NewString(),
		TraceID:    appCtx.GetRequestID(ctx),
		OccurredAt: now.UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(env)
	if err != nil {
		zlog.Error().Err(err).Str("routing_key", routingKey).Msg("encode domain event failed")
		return
	}

	if err := pub.PublishEvent(ctx, routingKey, env.MessageID, body); err != nil {
		zlog.Warn().
			Err(err).
			Str("routing_key", routingKey).
			Str("message_id", env.MessageID).
			Msg("publish domain event failed")
		return
	}

	zlog.Debug().Str("routing_key", routingKey).Str("message_id", env.MessageID).Msg("domain event published")
}
