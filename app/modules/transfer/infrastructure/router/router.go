package transferrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	transferservice "github.com/campus-commons/clubhub-bot/app/modules/transfer/application"
	transferhandlers "github.com/campus-commons/clubhub-bot/app/modules/transfer/infrastructure/handlers"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// TransferRouter handles routing for transfer module events.
type TransferRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewTransferRouter creates a new TransferRouter.
func NewTransferRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *TransferRouter {
	return &TransferRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *TransferRouter) Configure(ctx context.Context, service transferservice.Service) error {
	handlers := transferhandlers.NewTransferHandlers(service)

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
	handlerName := "transfer." + topic

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
func (r *TransferRouter) RegisterHandlers(ctx context.Context, handlers transferhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, transferevents.TransferRequestedV1, handlers.HandleRequestTransfer)
	registerHandler(deps, transferevents.TransferApproveRequestedV1, handlers.HandleApproveTransfer)
	registerHandler(deps, transferevents.TransferDenyRequestedV1, handlers.HandleDenyTransfer)

	return nil
}

// Close stops the router.
func (r *TransferRouter) Close() error {
	return r.Router.Close()
}
