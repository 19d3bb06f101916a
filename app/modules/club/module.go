package club

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	clubservice "github.com/campus-commons/clubhub-bot/app/modules/club/application"
	"github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/provision"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	clubrouter "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/router"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	"github.com/campus-commons/clubhub-bot/config"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/observability"
	"github.com/campus-commons/clubhub-bot/internal/platform"
)

// Module wires the club registration and approval workflow.
type Module struct {
	EventBus      eventbus.EventBus
	ClubService   clubservice.Service
	ClubRouter    *clubrouter.ClubRouter
	config        *config.Config
	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// NewClubModule creates a new instance of the club module.
func NewClubModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	platformClient platform.Client,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	repo := clubdb.NewRepository(db)
	members := membershipdb.NewRepository(db)
	provisioner := provision.New(platformClient, logger, cfg.Gateway.BotUserID)

	service := clubservice.NewClubService(
		repo,
		members,
		provisioner,
		platformClient,
		logger,
		obs.Metrics,
		tracer,
		db,
	)

	moduleRouter := clubrouter.NewClubRouter(logger, router, eventBus, eventBus, tracer)
	if err := moduleRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure club router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		ClubService:   service,
		ClubRouter:    moduleRouter,
		config:        cfg,
		observability: obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting club module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Club module goroutine stopped")
}

// Close stops the club module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping club module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Club module stopped")
	return nil
}
