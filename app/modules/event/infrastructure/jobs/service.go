// Package eventjobs schedules time-driven work on a River queue backed by
// the application database: event completions, registration deadlines, and
// the periodic sweeps.
package eventjobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	eventservice "github.com/campus-commons/clubhub-bot/app/modules/event/application"
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
)

const (
	queueEvents = "events"

	sweepInterval  = 15 * time.Minute
	expiryInterval = time.Hour
)

// Config holds queue settings.
type Config struct {
	DSN string
	// TransferPendingTTL is how long a transfer request may stay pending
	// before the sweep expires it.
	TransferPendingTTL time.Duration
}

// Service runs the River client and implements the event service's
// Scheduler contract.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger

	closeWorker  *RegistrationCloseWorker
	expiryWorker *TransferExpiryWorker
}

var _ eventservice.Scheduler = (*Service)(nil)

// NewService connects a pgx pool for River and registers the workers. The
// event and transfer services are wired afterwards with SetEventService and
// SetTransferService; the queue must not start before both are set.
func NewService(ctx context.Context, cfg Config, logger *slog.Logger, publisher eventbus.EventBus, events eventdb.Repository) (*Service, error) {
	if cfg.TransferPendingTTL <= 0 {
		cfg.TransferPendingTTL = 72 * time.Hour
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	completionWorker := NewEventCompletionWorker(logger, publisher)
	closeWorker := NewRegistrationCloseWorker(logger, publisher)
	sweepWorker := NewEventSweepWorker(logger, publisher, events)
	expiryWorker := NewTransferExpiryWorker(logger, cfg.TransferPendingTTL)

	workers := river.NewWorkers()
	river.AddWorker(workers, completionWorker)
	river.AddWorker(workers, closeWorker)
	river.AddWorker(workers, sweepWorker)
	river.AddWorker(workers, expiryWorker)

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			queueEvents:        {MaxWorkers: 10},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(sweepInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return EventSweepJob{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
			river.NewPeriodicJob(
				river.PeriodicInterval(expiryInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return TransferExpiryJob{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Service{
		client:       client,
		pool:         pool,
		logger:       logger,
		closeWorker:  closeWorker,
		expiryWorker: expiryWorker,
	}, nil
}

// SetEventService wires the event service into the deadline worker.
func (s *Service) SetEventService(service RegistrationCloser) {
	s.closeWorker.SetService(service)
}

// SetTransferService wires the transfer service into the expiry sweep.
func (s *Service) SetTransferService(service TransferSweeper) {
	s.expiryWorker.SetService(service)
}

// Start starts the queue workers.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Job queue started")
	return nil
}

// Stop drains and stops the queue, then closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Job queue stopped")
	return nil
}

// ScheduleEventCompletion schedules the completion trigger for an event.
func (s *Service) ScheduleEventCompletion(ctx context.Context, eventID eventtypes.EventID, guildID sharedtypes.GuildID, at time.Time) error {
	_, err := s.client.Insert(ctx, EventCompletionJob{
		EventID: eventID.String(),
		GuildID: guildID,
	}, &river.InsertOpts{
		Queue:       queueEvents,
		ScheduledAt: at,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule event completion: %w", err)
	}

	s.logger.InfoContext(ctx, "Scheduled event completion",
		attr.String("event_id", eventID.String()),
		attr.Time("at", at),
	)
	return nil
}

// ScheduleRegistrationClose schedules the registration deadline trigger.
func (s *Service) ScheduleRegistrationClose(ctx context.Context, eventID eventtypes.EventID, at time.Time) error {
	_, err := s.client.Insert(ctx, RegistrationCloseJob{
		EventID: eventID.String(),
	}, &river.InsertOpts{
		Queue:       queueEvents,
		ScheduledAt: at,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule registration close: %w", err)
	}

	s.logger.InfoContext(ctx, "Scheduled registration close",
		attr.String("event_id", eventID.String()),
		attr.Time("at", at),
	)
	return nil
}
