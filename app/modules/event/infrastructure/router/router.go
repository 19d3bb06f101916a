package eventrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventservice "github.com/campus-commons/clubhub-bot/app/modules/event/application"
	eventhandlers "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/handlers"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// EventRouter handles routing for event module events.
type EventRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewEventRouter creates a new EventRouter.
func NewEventRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *EventRouter {
	return &EventRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *EventRouter) Configure(ctx context.Context, service eventservice.Service) error {
	handlers := eventhandlers.NewEventHandlers(service)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(ctx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler registers a typed handler; the wrapper publishes results
// itself so the router handler is a no-publish handler.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "event." + topic

	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.publisher,
			handler,
		),
	)
}

// RegisterHandlers registers event handlers.
func (r *EventRouter) RegisterHandlers(ctx context.Context, handlers eventhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, eventevents.EventCreateRequestedV1, handlers.HandleCreateEvent)
	registerHandler(deps, eventevents.EventApproveRequestedV1, handlers.HandleApproveEvent)
	registerHandler(deps, eventevents.EventRejectRequestedV1, handlers.HandleRejectEvent)
	registerHandler(deps, eventevents.EventJoinRequestedV1, handlers.HandleJoinEvent)
	registerHandler(deps, eventevents.EventLeaveRequestedV1, handlers.HandleLeaveEvent)
	registerHandler(deps, eventevents.EventCompleteRequestedV1, handlers.HandleCompleteEvent)
	registerHandler(deps, eventevents.PaymentStatusUpdatedV1, handlers.HandlePaymentStatusUpdated)

	return nil
}

// Close stops the router.
func (r *EventRouter) Close() error {
	return r.Router.Close()
}
