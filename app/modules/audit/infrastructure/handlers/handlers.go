package audithandlers

import (
	"context"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	auditservice "github.com/campus-commons/clubhub-bot/app/modules/audit/application"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// Handlers defines the interface for audit event handlers.
type Handlers interface {
	HandleRecordEntry(ctx context.Context, payload *auditevents.AuditEntryPayloadV1) ([]handlerwrapper.Result, error)
}

// AuditHandlers implements the Handlers interface for audit events.
type AuditHandlers struct {
	service auditservice.Service
}

// NewAuditHandlers creates a new AuditHandlers instance.
func NewAuditHandlers(service auditservice.Service) *AuditHandlers {
	return &AuditHandlers{service: service}
}

var _ Handlers = (*AuditHandlers)(nil)

// HandleRecordEntry persists one audit record. Nothing is published in
// response; the log is a sink.
func (h *AuditHandlers) HandleRecordEntry(ctx context.Context, payload *auditevents.AuditEntryPayloadV1) ([]handlerwrapper.Result, error) {
	if err := h.service.RecordEntry(ctx, payload); err != nil {
		return nil, err
	}
	return nil, nil
}
