package auditservice

import (
	"context"

	"github.com/uptrace/bun"

	auditdb "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories"
)

type FakeAuditRepo struct {
	Inserted []auditdb.AuditLogEntry

	InsertFunc func(ctx context.Context, db bun.IDB, entry *auditdb.AuditLogEntry) error
	ListFunc   func(ctx context.Context, db bun.IDB, filter auditdb.Filter) ([]auditdb.AuditLogEntry, error)
}

func (f *FakeAuditRepo) Insert(ctx context.Context, db bun.IDB, entry *auditdb.AuditLogEntry) error {
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, entry)
	}
	f.Inserted = append(f.Inserted, *entry)
	return nil
}

func (f *FakeAuditRepo) List(ctx context.Context, db bun.IDB, filter auditdb.Filter) ([]auditdb.AuditLogEntry, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, filter)
	}
	return nil, nil
}

var _ auditdb.Repository = (*FakeAuditRepo)(nil)
