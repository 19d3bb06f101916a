package clubmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating clubs table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS clubs (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					guild_id VARCHAR(20) NOT NULL,
					name VARCHAR(100) NOT NULL,
					slug VARCHAR(120) NOT NULL,
					description TEXT,
					logo_url TEXT,
					category VARCHAR(20) NOT NULL,
					president_user_id VARCHAR(20) NOT NULL,
					status VARCHAR(12) NOT NULL DEFAULT 'pending',
					role_id VARCHAR(20),
					moderator_role_id VARCHAR(20),
					channel_id VARCHAR(20),
					voice_channel_id VARCHAR(20),
					max_members INTEGER,
					require_approval BOOLEAN NOT NULL DEFAULT FALSE,
					contact_email TEXT,
					contact_discord TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_clubs_guild_id ON clubs(guild_id);
				CREATE INDEX IF NOT EXISTS idx_clubs_guild_status ON clubs(guild_id, status);
			`); err != nil {
				return fmt.Errorf("failed to create clubs table: %w", err)
			}

			// Slugs and names are unique per guild while the club is alive.
			// Dissolved and rejected clubs free their names for reuse.
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS uq_clubs_guild_slug_live
					ON clubs(guild_id, slug)
					WHERE status IN ('pending', 'active');
				CREATE UNIQUE INDEX IF NOT EXISTS uq_clubs_guild_name_live
					ON clubs(guild_id, LOWER(name))
					WHERE status IN ('pending', 'active');
			`); err != nil {
				return fmt.Errorf("failed to create club uniqueness indexes: %w", err)
			}

			// One pending or active club per president per guild. This is the
			// actual race guard for concurrent registrations.
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS uq_clubs_guild_president_live
					ON clubs(guild_id, president_user_id)
					WHERE status IN ('pending', 'active');
			`); err != nil {
				return fmt.Errorf("failed to create president uniqueness index: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping clubs table...")
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS clubs;`); err != nil {
			return fmt.Errorf("failed to drop clubs table: %w", err)
		}
		return nil
	})
}
