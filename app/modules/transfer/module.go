package transfer

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	transferservice "github.com/campus-commons/clubhub-bot/app/modules/transfer/application"
	transferdb "github.com/campus-commons/clubhub-bot/app/modules/transfer/infrastructure/repositories"
	transferrouter "github.com/campus-commons/clubhub-bot/app/modules/transfer/infrastructure/router"
	"github.com/campus-commons/clubhub-bot/config"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/observability"
	"github.com/campus-commons/clubhub-bot/internal/platform"
)

// Module wires the presidency transfer workflow.
type Module struct {
	EventBus        eventbus.EventBus
	TransferService transferservice.Service
	TransferRouter  *transferrouter.TransferRouter
	config          *config.Config
	observability   *observability.Observability
	cancelFunc      context.CancelFunc
}

// NewTransferModule creates a new instance of the transfer module.
func NewTransferModule(
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

	repo := transferdb.NewRepository(db)
	clubs := clubdb.NewRepository(db)
	members := membershipdb.NewRepository(db)

	service := transferservice.NewTransferService(
		repo,
		clubs,
		members,
		verifier,
		platformClient,
		logger,
		obs.Metrics,
		tracer,
		db,
	)

	moduleRouter := transferrouter.NewTransferRouter(logger, router, eventBus, eventBus, tracer)
	if err := moduleRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure transfer router: %w", err)
	}

	return &Module{
		EventBus:        eventBus,
		TransferService: service,
		TransferRouter:  moduleRouter,
		config:          cfg,
		observability:   obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting transfer module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Transfer module goroutine stopped")
}

// Close stops the transfer module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping transfer module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Transfer module stopped")
	return nil
}
