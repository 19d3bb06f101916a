package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	eventservice "github.com/campus-commons/clubhub-bot/app/modules/event/application"
	eventjobs "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/jobs"
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	eventrouter "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/router"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	"github.com/campus-commons/clubhub-bot/config"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/observability"
	"github.com/campus-commons/clubhub-bot/internal/platform"
)

// Module wires the event workflow: proposal, review, registration, payment
// holds, and time-driven completion via the job queue.
type Module struct {
	EventBus      eventbus.EventBus
	EventService  eventservice.Service
	EventRouter   *eventrouter.EventRouter
	Jobs          *eventjobs.Service
	config        *config.Config
	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// NewEventModule creates a new instance of the event module. The caller
// wires the transfer service into Jobs before Run starts the queue.
func NewEventModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	platformClient platform.Client,
	verifier platform.VerificationClient,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	repo := eventdb.NewRepository(db)
	clubs := clubdb.NewRepository(db)
	members := membershipdb.NewRepository(db)

	jobs, err := eventjobs.NewService(ctx, eventjobs.Config{
		DSN:                cfg.Postgres.DSN,
		TransferPendingTTL: cfg.Transfer.PendingTTL,
	}, logger, eventBus, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to create event job queue: %w", err)
	}

	service := eventservice.NewEventService(
		repo,
		clubs,
		members,
		verifier,
		platformClient,
		jobs,
		eventservice.Config{CountPendingPaymentTowardCapacity: cfg.Events.CountPendingPaymentTowardCapacity},
		logger,
		obs.Metrics,
		tracer,
		db,
	)
	jobs.SetEventService(service)

	moduleRouter := eventrouter.NewEventRouter(logger, router, eventBus, eventBus, tracer)
	if err := moduleRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure event router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		EventService:  service,
		EventRouter:   moduleRouter,
		Jobs:          jobs,
		config:        cfg,
		observability: obs,
	}, nil
}

// Run starts the job queue and keeps the module alive until the context is
// canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting event module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.Jobs.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start event job queue", attr.Error(err))
		return
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Event module goroutine stopped")
}

// Close stops the event module and its job queue.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping event module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if err := m.Jobs.Stop(context.Background()); err != nil {
		logger.Error("Failed to stop event job queue", attr.Error(err))
	}

	logger.Info("Event module stopped")
	return nil
}
