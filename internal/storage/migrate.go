package storage

import (
	"context"
	"fmt"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/jobs"
	"github.com/cloudmlm/go-sitecms/internal/overrides"
	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
	"github.com/uptrace/bun"
)

type index struct {
	name    string
	model   any
	columns []string
	unique  bool
}

func models() []any {
	return []any{
		(*content.Record)(nil),
		(*pagetitles.Override)(nil),
		(*overrides.LayoutOverridesModel)(nil),
		(*jobs.AuditEventModel)(nil),
	}
}

func indexes() []index {
	return []index{
		{name: "content_records_group_locale_uq", model: (*content.Record)(nil), columns: []string{"group_id", "locale"}, unique: true},
		{name: "content_records_kind_locale_idx", model: (*content.Record)(nil), columns: []string{"kind", "locale"}},
		{name: "page_title_overrides_key_locale_uq", model: (*pagetitles.Override)(nil), columns: []string{"page_key", "locale"}, unique: true},
		{name: "job_audit_events_job_idx", model: (*jobs.AuditEventModel)(nil), columns: []string{"job", "occurred_at"}},
	}
}

// Migrate creates every table and index the SQL repositories use. It is
// idempotent.
func Migrate(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("storage: migrate requires a database")
	}
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range models() {
			if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("storage: create table for %T: %w", model, err)
			}
		}
		for _, idx := range indexes() {
			query := tx.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...).IfNotExists()
			if idx.unique {
				query = query.Unique()
			}
			if _, err := query.Exec(ctx); err != nil {
				return fmt.Errorf("storage: create index %s: %w", idx.name, err)
			}
		}
		return nil
	})
}
