// Package testutils provides containerized infrastructure for integration
// tests: a throwaway Postgres with all module migrations applied, plus
// generators for realistic test data.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/migrate"

	auditmigrations "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories/migrations"
	clubmigrations "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories/migrations"
	eventmigrations "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories/migrations"
	membershipmigrations "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories/migrations"
	transfermigrations "github.com/campus-commons/clubhub-bot/app/modules/transfer/infrastructure/repositories/migrations"
)

// PostgresEnv is a running Postgres container with all module schemas applied.
type PostgresEnv struct {
	Container *postgres.PostgresContainer
	DB        *bun.DB
	ConnStr   string
}

// SetupPostgres starts a Postgres testcontainer, runs every module migration,
// and registers cleanup on the test. Tests that need a real database share
// one call per package and truncate between cases.
func SetupPostgres(t *testing.T) *PostgresEnv {
	t.Helper()
	ctx := context.Background()

	dbName := "clubhub_test"
	user := "testuser"
	password := "testpass"

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForSQL("5432/tcp", "pgx",
				func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
						user, password, host, port.Port(), dbName)
				},
			).WithStartupTimeout(45*time.Second),
		),
	)
	if err != nil {
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("failed to get connection string: %v", err)
	}

	sqldb, err := sql.Open("pgx", connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("failed to open database: %v", err)
	}
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := runAllMigrations(ctx, db, connStr); err != nil {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	env := &PostgresEnv{Container: pgContainer, DB: db, ConnStr: connStr}
	t.Cleanup(func() {
		_ = db.Close()
		_ = pgContainer.Terminate(context.Background())
	})
	return env
}

// runAllMigrations applies the River schema and then every module's
// migrations. Order matters due to foreign key constraints: clubs must exist
// before the tables that reference them.
func runAllMigrations(ctx context.Context, db *bun.DB, connStr string) error {
	migrator := migrate.NewMigrator(db, clubmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	if err := runRiverMigrations(ctx, connStr); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}

	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"club", clubmigrations.Migrations},
		{"membership", membershipmigrations.Migrations},
		{"transfer", transfermigrations.Migrations},
		{"event", eventmigrations.Migrations},
		{"audit", auditmigrations.Migrations},
	}
	for _, mod := range orderedModules {
		m := migrate.NewMigrator(db, mod.migrations)
		group, err := m.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
		if group.ID == 0 {
			log.Printf("No %s migrations to run", mod.name)
		}
	}
	return nil
}

// runRiverMigrations applies the River queue schema so scheduled jobs can be
// inserted during tests.
func runRiverMigrations(ctx context.Context, connStr string) error {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// TruncateTables truncates the given tables with CASCADE so dependent rows
// go too.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf("%q", table)
	}
	query := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " CASCADE"
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}
