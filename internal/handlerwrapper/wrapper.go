// Package handlerwrapper adapts typed event handlers to Watermill. Handlers
// take a decoded payload struct and return Results; the wrapper owns JSON
// decoding, correlation id propagation, tracing, panic recovery, and
// publishing, so handler code never touches *message.Message directly.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/campus-commons/clubhub-bot/internal/attr"
)

// Metadata keys carried on every message.
const (
	MetadataCorrelationID = "correlation_id"
	MetadataReplyTo       = "reply_to"
)

type ctxKey string

// CtxKeyReplyTo is the context key under which a dynamic reply subject from
// the inbound message is stored, for request/reply style handlers.
const CtxKeyReplyTo ctxKey = "reply_to"

// Result is one outbound event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// ReplyTo extracts the dynamic reply subject from the context, or "".
func ReplyTo(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyReplyTo).(string); ok {
		return v
	}
	return ""
}

// WrapTyped wraps a typed handler into a Watermill HandlerFunc that publishes
// its Results through the given publisher. Decode failures are logged and
// dropped rather than retried: a payload that cannot be unmarshalled will
// never succeed on redelivery.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) (err error) {
		correlationID := msg.Metadata.Get(MetadataCorrelationID)
		if correlationID == "" {
			correlationID = msg.UUID
		}

		ctx := attr.WithCorrelationID(msg.Context(), correlationID)
		if replyTo := msg.Metadata.Get(MetadataReplyTo); replyTo != "" {
			ctx = context.WithValue(ctx, CtxKeyReplyTo, replyTo)
		}

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_uuid", msg.UUID),
		))
		defer span.End()

		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in %s: %v", handlerName, r)
				span.RecordError(err)
				logger.ErrorContext(ctx, "Panic recovered in handler",
					attr.ExtractCorrelationID(ctx),
					attr.String("handler", handlerName),
					attr.Error(err),
				)
			}
		}()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to unmarshal payload, dropping message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			span.RecordError(err)
			return nil
		}

		handlerResults, err := handler(ctx, payload)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("%s: %w", handlerName, err)
		}

		for _, result := range handlerResults {
			body, err := json.Marshal(result.Payload)
			if err != nil {
				span.RecordError(err)
				return fmt.Errorf("%s: failed to marshal result for %s: %w", handlerName, result.Topic, err)
			}

			outMsg := message.NewMessage(watermill.NewUUID(), body)
			outMsg.Metadata.Set(MetadataCorrelationID, correlationID)
			for k, v := range result.Metadata {
				outMsg.Metadata.Set(k, v)
			}
			outMsg.SetContext(ctx)

			if err := publisher.Publish(result.Topic, outMsg); err != nil {
				span.RecordError(err)
				return fmt.Errorf("%s: failed to publish to %s: %w", handlerName, result.Topic, err)
			}
		}

		return nil
	}
}
