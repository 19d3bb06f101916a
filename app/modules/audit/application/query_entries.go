package auditservice

import (
	"context"
	"errors"

	auditdb "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories"
	audittypes "github.com/campus-commons/clubhub-bot/app/types/audit"
)

// QueryEntries returns audit records matching the filter, newest first.
// Backs the ops HTTP API and support tooling.
func (s *AuditService) QueryEntries(ctx context.Context, filter auditdb.Filter) ([]audittypes.Entry, error) {
	var entries []audittypes.Entry

	err := s.instrument(ctx, "QueryEntries", string(filter.GuildID), func(ctx context.Context) error {
		if filter.GuildID == "" {
			return errors.New("a guild id is required")
		}

		rows, err := s.repo.List(ctx, nil, filter)
		if err != nil {
			return err
		}

		entries = make([]audittypes.Entry, len(rows))
		for i := range rows {
			entries[i] = rows[i].ToDomain()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
