package auditrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	auditservice "github.com/campus-commons/clubhub-bot/app/modules/audit/application"
	audithandlers "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/handlers"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// AuditRouter handles routing for the audit sink.
type AuditRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewAuditRouter creates a new AuditRouter.
func NewAuditRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *AuditRouter {
	return &AuditRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *AuditRouter) Configure(ctx context.Context, service auditservice.Service) error {
	handlers := audithandlers.NewAuditHandlers(service)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(ctx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers registers event handlers.
func (r *AuditRouter) RegisterHandlers(ctx context.Context, handlers audithandlers.Handlers) error {
	topic := auditevents.AuditEntryRecordV1
	handlerName := "audit." + topic

	r.Router.AddNoPublisherHandler(
		handlerName,
		topic,
		r.subscriber,
		handlerwrapper.WrapTyped(
			handlerName,
			r.logger,
			r.tracer,
			r.publisher,
			handlers.HandleRecordEntry,
		),
	)

	return nil
}

// Close stops the router.
func (r *AuditRouter) Close() error {
	return r.Router.Close()
}
