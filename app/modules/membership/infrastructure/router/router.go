package membershiprouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	membershipservice "github.com/campus-commons/clubhub-bot/app/modules/membership/application"
	membershiphandlers "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/handlers"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// MembershipRouter handles routing for membership module events.
type MembershipRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewMembershipRouter creates a new MembershipRouter.
func NewMembershipRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *MembershipRouter {
	return &MembershipRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *MembershipRouter) Configure(ctx context.Context, service membershipservice.Service) error {
	handlers := membershiphandlers.NewMembershipHandlers(service)

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
	handlerName := "membership." + topic

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
func (r *MembershipRouter) RegisterHandlers(ctx context.Context, handlers membershiphandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, membershipevents.ClubJoinRequestedV1, handlers.HandleJoinClub)
	registerHandler(deps, membershipevents.JoinRequestApproveRequestedV1, handlers.HandleApproveJoinRequest)
	registerHandler(deps, membershipevents.JoinRequestRejectRequestedV1, handlers.HandleRejectJoinRequest)
	registerHandler(deps, membershipevents.MemberRemoveRequestedV1, handlers.HandleRemoveMember)
	registerHandler(deps, membershipevents.TrustedPromoteRequestedV1, handlers.HandlePromoteTrusted)
	registerHandler(deps, membershipevents.TrustedDemoteRequestedV1, handlers.HandleDemoteTrusted)

	return nil
}

// Close stops the router.
func (r *MembershipRouter) Close() error {
	return r.Router.Close()
}
