package membership

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipservice "github.com/campus-commons/clubhub-bot/app/modules/membership/application"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	membershiprouter "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/router"
	"github.com/campus-commons/clubhub-bot/config"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/observability"
	"github.com/campus-commons/clubhub-bot/internal/platform"
)

// Module wires the membership workflow: joins, join-request review,
// removal, and the trusted tier.
type Module struct {
	EventBus          eventbus.EventBus
	MembershipService membershipservice.Service
	MembershipRouter  *membershiprouter.MembershipRouter
	config            *config.Config
	observability     *observability.Observability
	cancelFunc        context.CancelFunc
}

// NewMembershipModule creates a new instance of the membership module.
func NewMembershipModule(
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

	repo := membershipdb.NewRepository(db)
	clubs := clubdb.NewRepository(db)

	service := membershipservice.NewMembershipService(
		repo,
		clubs,
		verifier,
		platformClient,
		membershipservice.Config{MinInterestReasonLength: cfg.Membership.MinInterestReasonLength},
		logger,
		obs.Metrics,
		tracer,
		db,
	)

	moduleRouter := membershiprouter.NewMembershipRouter(logger, router, eventBus, eventBus, tracer)
	if err := moduleRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure membership router: %w", err)
	}

	return &Module{
		EventBus:          eventBus,
		MembershipService: service,
		MembershipRouter:  moduleRouter,
		config:            cfg,
		observability:     obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting membership module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Membership module goroutine stopped")
}

// Close stops the membership module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping membership module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Membership module stopped")
	return nil
}
