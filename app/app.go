// Package app composes the governance backend: database, event bus,
// Watermill router, platform gateway client, the governance modules, and the
// ops HTTP server.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/campus-commons/clubhub-bot/app/modules/audit"
	"github.com/campus-commons/clubhub-bot/app/modules/club"
	"github.com/campus-commons/clubhub-bot/app/modules/event"
	"github.com/campus-commons/clubhub-bot/app/modules/membership"
	"github.com/campus-commons/clubhub-bot/app/modules/transfer"
	"github.com/campus-commons/clubhub-bot/config"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/db/bundb"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/httpapi"
	"github.com/campus-commons/clubhub-bot/internal/observability"
	"github.com/campus-commons/clubhub-bot/internal/platform"
)

// App holds the composed application.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	Router        *message.Router

	db         *bun.DB
	eventBus   *eventbus.Bus
	httpServer *httpapi.Server

	clubModule       *club.Module
	membershipModule *membership.Module
	transferModule   *transfer.Module
	eventModule      *event.Module
	auditModule      *audit.Module
}

// NewApp wires every component. Nothing starts running until Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(observability.Config{
		ServiceName:    "clubhub-bot",
		Environment:    cfg.Observability.Environment,
		MetricsAddress: cfg.Observability.MetricsAddress,
		TracingEnabled: cfg.Observability.TracingEnabled,
	})
	logger := obs.Logger

	db, err := bundb.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	wmLogger := watermill.NewSlogLogger(logger)
	bus, err := eventbus.New(eventbus.Config{
		URL:      cfg.NATS.URL,
		NkeySeed: cfg.NATS.NkeySeed,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	gateway := platform.NewNATSClient(bus.Conn(), platform.NATSClientConfig{
		RequestTimeout: cfg.Gateway.RequestTimeout,
		RequestsPerSec: cfg.Gateway.RequestsPerSec,
		Burst:          cfg.Gateway.Burst,
	})

	clubModule, err := club.NewClubModule(ctx, cfg, obs, db, gateway, bus, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize club module: %w", err)
	}

	membershipModule, err := membership.NewMembershipModule(ctx, cfg, obs, db, gateway, gateway, bus, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize membership module: %w", err)
	}

	transferModule, err := transfer.NewTransferModule(ctx, cfg, obs, db, gateway, gateway, bus, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transfer module: %w", err)
	}

	eventModule, err := event.NewEventModule(ctx, cfg, obs, db, gateway, gateway, bus, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event module: %w", err)
	}
	eventModule.Jobs.SetTransferService(transferModule.TransferService)

	auditModule, err := audit.NewAuditModule(ctx, cfg, obs, db, bus, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit module: %w", err)
	}

	var httpServer *httpapi.Server
	if cfg.HTTP.Address != "" {
		httpServer = httpapi.NewServer(httpapi.Config{
			Address:   cfg.HTTP.Address,
			JWTSecret: cfg.HTTP.JWTSecret,
		}, logger, obs.Metrics, clubModule.ClubService, auditModule.AuditService)
	}

	return &App{
		Config:           cfg,
		Observability:    obs,
		Router:           router,
		db:               db,
		eventBus:         bus,
		httpServer:       httpServer,
		clubModule:       clubModule,
		membershipModule: membershipModule,
		transferModule:   transferModule,
		eventModule:      eventModule,
		auditModule:      auditModule,
	}, nil
}

// Run starts the router, the modules, and the HTTP server, and blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger
	a.Observability.LogStartup(ctx, "app")

	var wg sync.WaitGroup

	wg.Add(5)
	go a.clubModule.Run(ctx, &wg)
	go a.membershipModule.Run(ctx, &wg)
	go a.transferModule.Run(ctx, &wg)
	go a.eventModule.Run(ctx, &wg)
	go a.auditModule.Run(ctx, &wg)

	if a.httpServer != nil {
		go func() {
			if err := a.httpServer.Start(); err != nil {
				logger.ErrorContext(ctx, "Ops HTTP server failed", attr.Error(err))
			}
		}()
	}

	if err := a.Router.Run(ctx); err != nil {
		return fmt.Errorf("message router stopped: %w", err)
	}

	wg.Wait()
	return nil
}

// Close releases everything in reverse dependency order.
func (a *App) Close(ctx context.Context) error {
	logger := a.Observability.Logger
	logger.Info("Shutting down")

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			logger.Error("Failed to stop ops HTTP server", attr.Error(err))
		}
	}

	a.clubModule.Close()
	a.membershipModule.Close()
	a.transferModule.Close()
	a.eventModule.Close()
	a.auditModule.Close()

	if err := a.eventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", attr.Error(err))
	}
	if err := a.db.Close(); err != nil {
		logger.Error("Failed to close database", attr.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
