package eventmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating event tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS events (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					club_id UUID NOT NULL REFERENCES clubs(id),
					guild_id VARCHAR(20) NOT NULL,
					title VARCHAR(200) NOT NULL,
					description TEXT,
					event_type VARCHAR(30),
					status VARCHAR(12) NOT NULL DEFAULT 'pending',
					start_time TIMESTAMPTZ NOT NULL,
					end_time TIMESTAMPTZ,
					location_type VARCHAR(10) NOT NULL DEFAULT 'physical',
					location TEXT,
					min_participants INTEGER,
					max_participants INTEGER,
					registration JSONB NOT NULL DEFAULT '{}',
					team JSONB NOT NULL DEFAULT '{}',
					eligibility JSONB NOT NULL DEFAULT '{}',
					poster_url TEXT,
					channel_id VARCHAR(20),
					message_id VARCHAR(20),
					created_by VARCHAR(20) NOT NULL,
					approved_by VARCHAR(20),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_events_club_status ON events(club_id, status);
				CREATE INDEX IF NOT EXISTS idx_events_guild ON events(guild_id, status);
				CREATE INDEX IF NOT EXISTS idx_events_start_time ON events(status, start_time);
			`); err != nil {
				return fmt.Errorf("failed to create events table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS event_participants (
					event_id UUID NOT NULL REFERENCES events(id),
					user_id VARCHAR(20) NOT NULL,
					guild_id VARCHAR(20) NOT NULL,
					rsvp_status VARCHAR(16) NOT NULL DEFAULT 'going',
					registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					checked_in BOOLEAN NOT NULL DEFAULT FALSE,
					team_name TEXT,
					is_team_captain BOOLEAN NOT NULL DEFAULT FALSE,
					registration_data JSONB,
					PRIMARY KEY (event_id, user_id)
				);
				CREATE INDEX IF NOT EXISTS idx_event_participants_status ON event_participants(event_id, rsvp_status);
			`); err != nil {
				return fmt.Errorf("failed to create event_participants table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping event tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range []string{
				`DROP TABLE IF EXISTS event_participants;`,
				`DROP TABLE IF EXISTS events;`,
			} {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to drop event table: %w", err)
				}
			}
			return nil
		})
	})
}
