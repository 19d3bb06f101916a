package clubrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	clubservice "github.com/campus-commons/clubhub-bot/app/modules/club/application"
	clubhandlers "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/handlers"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// ClubRouter handles routing for club module events.
type ClubRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewClubRouter creates a new ClubRouter.
func NewClubRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *ClubRouter {
	return &ClubRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *ClubRouter) Configure(ctx context.Context, service clubservice.Service) error {
	handlers := clubhandlers.NewClubHandlers(service)

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
	handlerName := "club." + topic

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
func (r *ClubRouter) RegisterHandlers(ctx context.Context, handlers clubhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, clubevents.ClubRegisterRequestedV1, handlers.HandleRegisterClub)
	registerHandler(deps, clubevents.ClubApproveRequestedV1, handlers.HandleApproveClub)
	registerHandler(deps, clubevents.ClubRejectRequestedV1, handlers.HandleRejectClub)
	registerHandler(deps, clubevents.ClubDissolveRequestedV1, handlers.HandleDissolveClub)
	registerHandler(deps, clubevents.ClubListRequestedV1, handlers.HandleListClubs)

	return nil
}

// Close stops the router.
func (r *ClubRouter) Close() error {
	return r.Router.Close()
}
