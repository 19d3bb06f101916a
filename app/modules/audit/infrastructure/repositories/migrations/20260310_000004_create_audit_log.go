package auditmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating audit log table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS audit_log_entries (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					guild_id VARCHAR(20) NOT NULL,
					club_id UUID,
					action_type VARCHAR(40) NOT NULL,
					performed_by VARCHAR(20),
					target_id TEXT,
					details JSONB,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_audit_guild_time ON audit_log_entries(guild_id, created_at DESC);
				CREATE INDEX IF NOT EXISTS idx_audit_club_time ON audit_log_entries(club_id, created_at DESC) WHERE club_id IS NOT NULL;
				CREATE INDEX IF NOT EXISTS idx_audit_action ON audit_log_entries(guild_id, action_type);
			`); err != nil {
				return fmt.Errorf("failed to create audit_log_entries table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping audit log table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS audit_log_entries;`); err != nil {
				return fmt.Errorf("failed to drop audit_log_entries table: %w", err)
			}
			return nil
		})
	})
}
