package pagetitles

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewOverrideRepository builds the go-repository-bun repository for overrides.
func NewOverrideRepository(db *bun.DB) repository.Repository[*Override] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Override]{
		NewRecord: func() *Override { return &Override{} },
		GetID: func(o *Override) uuid.UUID {
			return o.ID
		},
		SetID: func(o *Override, id uuid.UUID) {
			o.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(o *Override) string {
			if o == nil {
				return ""
			}
			return o.ID.String()
		},
	})
}

// BunRepository implements Repository on top of go-repository-bun.
type BunRepository struct {
	repo repository.Repository[*Override]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewOverrideRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, override *Override) (*Override, error) {
	if _, err := r.GetByID(ctx, override.ID); err == nil {
		return nil, ErrDuplicateOverride
	}
	return r.repo.Create(ctx, override)
}

func (r *BunRepository) Update(ctx context.Context, override *Override) (*Override, error) {
	record, err := r.repo.Update(ctx, override)
	if err != nil {
		return nil, mapRepositoryError(err, override.ID.String())
	}
	return record, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Override, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) Find(ctx context.Context, pageKey, locale string) (*Override, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_key = ?", pageKey).
				Where("?TableAlias.locale = ?", locale)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "page_title_override", Key: pageKey + ":" + locale}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Override, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.page_key ASC").OrderExpr("?TableAlias.locale ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &Override{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "page_title_override", Key: key}
	}
	return fmt.Errorf("page_title_override repository error: %w", err)
}
