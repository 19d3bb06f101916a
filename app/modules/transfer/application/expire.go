package transferservice

import (
	"context"
	"fmt"
	"time"

	"github.com/campus-commons/clubhub-bot/internal/attr"
)

// ExpireStaleRequests marks pending transfer requests older than the given
// age as expired and returns how many were swept. Called by the periodic
// maintenance job rather than a user command.
func (s *TransferService) ExpireStaleRequests(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	expired, err := s.repo.ExpirePending(ctx, s.db, cutoff)
	if err != nil {
		return 0, fmt.Errorf("ExpireStaleRequests: %w", err)
	}

	if expired > 0 {
		s.logger.InfoContext(ctx, "Expired stale transfer requests",
			attr.ExtractCorrelationID(ctx),
			attr.Int("expired_count", expired),
		)
	}
	return expired, nil
}
