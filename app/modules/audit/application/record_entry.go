package auditservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	auditdb "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories"
)

// ErrNilPayload indicates a handler passed a nil payload.
var ErrNilPayload = errors.New("payload cannot be nil")

// RecordEntry appends one audit record. Entries with no action type are
// dropped as malformed rather than persisted as noise.
func (s *AuditService) RecordEntry(ctx context.Context, payload *auditevents.AuditEntryPayloadV1) error {
	if payload == nil {
		return ErrNilPayload
	}

	return s.instrument(ctx, "RecordEntry", payload.ActionType, func(ctx context.Context) error {
		if payload.ActionType == "" {
			return errors.New("audit entry has no action type")
		}
		if payload.GuildID == "" {
			return errors.New("audit entry has no guild id")
		}

		entry := &auditdb.AuditLogEntry{
			ID:          uuid.New(),
			GuildID:     payload.GuildID,
			ClubID:      payload.ClubID,
			ActionType:  payload.ActionType,
			PerformedBy: payload.PerformedBy,
			TargetID:    payload.TargetID,
			Details:     payload.Details,
		}
		return s.repo.Insert(ctx, nil, entry)
	})
}
