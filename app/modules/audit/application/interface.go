package auditservice

import (
	"context"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	auditdb "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories"
	audittypes "github.com/campus-commons/clubhub-bot/app/types/audit"
)

// Service defines the interface for audit log operations.
type Service interface {
	RecordEntry(ctx context.Context, payload *auditevents.AuditEntryPayloadV1) error
	QueryEntries(ctx context.Context, filter auditdb.Filter) ([]audittypes.Entry, error)
}

var _ Service = (*AuditService)(nil)
