package transfermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating pending_transfer_requests table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS pending_transfer_requests (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					club_id UUID NOT NULL REFERENCES clubs(id),
					guild_id VARCHAR(20) NOT NULL,
					initiator_user_id VARCHAR(20) NOT NULL,
					candidate_user_id VARCHAR(20) NOT NULL,
					reason TEXT,
					status VARCHAR(12) NOT NULL DEFAULT 'pending',
					resolved_by VARCHAR(20),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					resolved_at TIMESTAMPTZ
				);
				CREATE INDEX IF NOT EXISTS idx_transfer_requests_guild ON pending_transfer_requests(guild_id, status);
			`); err != nil {
				return fmt.Errorf("failed to create pending_transfer_requests table: %w", err)
			}

			// One unresolved transfer per club at a time.
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS uq_transfer_requests_pending
					ON pending_transfer_requests(club_id)
					WHERE status = 'pending';
			`); err != nil {
				return fmt.Errorf("failed to create pending transfer index: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping pending_transfer_requests table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS pending_transfer_requests;`); err != nil {
				return fmt.Errorf("failed to drop pending_transfer_requests table: %w", err)
			}
			return nil
		})
	})
}
