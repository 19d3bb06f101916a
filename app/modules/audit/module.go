package audit

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	auditservice "github.com/campus-commons/clubhub-bot/app/modules/audit/application"
	auditdb "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories"
	auditrouter "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/router"
	"github.com/campus-commons/clubhub-bot/config"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/observability"
)

// Module wires the audit sink: every governance operation's record event is
// persisted here, and the query side backs the ops HTTP API.
type Module struct {
	EventBus      eventbus.EventBus
	AuditService  auditservice.Service
	AuditRouter   *auditrouter.AuditRouter
	config        *config.Config
	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// NewAuditModule creates a new instance of the audit module.
func NewAuditModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	repo := auditdb.NewRepository(db)
	service := auditservice.NewAuditService(repo, logger, obs.Metrics, tracer, db)

	moduleRouter := auditrouter.NewAuditRouter(logger, router, eventBus, eventBus, tracer)
	if err := moduleRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure audit router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		AuditService:  service,
		AuditRouter:   moduleRouter,
		config:        cfg,
		observability: obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting audit module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Audit module goroutine stopped")
}

// Close stops the audit module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping audit module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Audit module stopped")
	return nil
}
