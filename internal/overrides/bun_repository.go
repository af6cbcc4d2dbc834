package overrides

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

var errNoDatabase = errors.New("overrides: bun repository requires a database")

// BunRepository stores one row per locale in layout_overrides.
type BunRepository struct {
	db  *bun.DB
	now func() time.Time
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db, now: time.Now}
}

// LayoutOverridesModel is the bun model for stored overrides.
type LayoutOverridesModel struct {
	bun.BaseModel `bun:"table:layout_overrides,alias:lo"`

	Locale    string          `bun:"locale,pk"`
	Payload   LayoutOverrides `bun:"payload,type:jsonb,notnull"`
	UpdatedAt time.Time       `bun:"updated_at,notnull"`
}

func (r *BunRepository) Get(ctx context.Context, locale string) (StoredOverrides, error) {
	if r.db == nil {
		return StoredOverrides{}, errNoDatabase
	}
	var model LayoutOverridesModel
	err := r.db.NewSelect().Model(&model).Where("?TableAlias.locale = ?", localeKey(locale)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredOverrides{}, ErrOverridesNotFound
		}
		return StoredOverrides{}, err
	}
	return modelToStored(model), nil
}

func (r *BunRepository) Put(ctx context.Context, stored StoredOverrides) (StoredOverrides, error) {
	if r.db == nil {
		return StoredOverrides{}, errNoDatabase
	}
	model := LayoutOverridesModel{
		Locale:    localeKey(stored.Locale),
		Payload:   stored.Overrides,
		UpdatedAt: stored.UpdatedAt,
	}
	if model.UpdatedAt.IsZero() {
		model.UpdatedAt = r.now().UTC()
	}

	_, err := r.Get(ctx, model.Locale)
	switch {
	case errors.Is(err, ErrOverridesNotFound):
		if _, err := r.db.NewInsert().Model(&model).Exec(ctx); err != nil {
			return StoredOverrides{}, err
		}
	case err != nil:
		return StoredOverrides{}, err
	default:
		if _, err := r.db.NewUpdate().
			Model(&model).
			Column("payload", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return StoredOverrides{}, err
		}
	}
	return r.Get(ctx, model.Locale)
}

func (r *BunRepository) Delete(ctx context.Context, locale string) error {
	if r.db == nil {
		return errNoDatabase
	}
	res, err := r.db.NewDelete().
		Model((*LayoutOverridesModel)(nil)).
		Where("locale = ?", localeKey(locale)).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrOverridesNotFound
	}
	return nil
}

func (r *BunRepository) List(ctx context.Context) ([]StoredOverrides, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}
	var models []LayoutOverridesModel
	if err := r.db.NewSelect().Model(&models).OrderExpr("?TableAlias.locale ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]StoredOverrides, 0, len(models))
	for _, model := range models {
		out = append(out, modelToStored(model))
	}
	return out, nil
}

func modelToStored(model LayoutOverridesModel) StoredOverrides {
	return StoredOverrides{
		Locale:    model.Locale,
		Overrides: model.Payload,
		UpdatedAt: model.UpdatedAt.UTC(),
	}
}
