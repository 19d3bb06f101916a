package membershipmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating membership tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS club_members (
					club_id UUID NOT NULL REFERENCES clubs(id),
					user_id VARCHAR(20) NOT NULL,
					guild_id VARCHAR(20) NOT NULL,
					role VARCHAR(12) NOT NULL DEFAULT 'member',
					status VARCHAR(12) NOT NULL DEFAULT 'active',
					joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					attendance_count INTEGER NOT NULL DEFAULT 0,
					contribution_points INTEGER NOT NULL DEFAULT 0,
					last_active_at TIMESTAMPTZ,
					PRIMARY KEY (club_id, user_id)
				);
				CREATE INDEX IF NOT EXISTS idx_club_members_user ON club_members(guild_id, user_id);
				CREATE INDEX IF NOT EXISTS idx_club_members_club_status ON club_members(club_id, status);
			`); err != nil {
				return fmt.Errorf("failed to create club_members table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS join_requests (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					club_id UUID NOT NULL REFERENCES clubs(id),
					user_id VARCHAR(20) NOT NULL,
					guild_id VARCHAR(20) NOT NULL,
					full_name TEXT NOT NULL,
					email TEXT,
					interest_reason TEXT NOT NULL,
					status VARCHAR(12) NOT NULL DEFAULT 'pending',
					reviewed_by VARCHAR(20),
					reviewed_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_join_requests_club_status ON join_requests(club_id, status);
			`); err != nil {
				return fmt.Errorf("failed to create join_requests table: %w", err)
			}

			// One outstanding pending request per user per club.
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS uq_join_requests_pending
					ON join_requests(club_id, user_id)
					WHERE status = 'pending';
			`); err != nil {
				return fmt.Errorf("failed to create pending join request index: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS trusted_members (
					club_id UUID NOT NULL REFERENCES clubs(id),
					user_id VARCHAR(20) NOT NULL,
					added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (club_id, user_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create trusted_members table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping membership tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range []string{
				`DROP TABLE IF EXISTS trusted_members;`,
				`DROP TABLE IF EXISTS join_requests;`,
				`DROP TABLE IF EXISTS club_members;`,
			} {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to drop membership table: %w", err)
				}
			}
			return nil
		})
	})
}
