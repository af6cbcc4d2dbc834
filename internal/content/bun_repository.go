package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	recordNamespace = "content_record"
	// recordCacheNamespace matches the model type name repositorycache keys on.
	recordCacheNamespace = "record"
)

// NewRecordRepository builds the go-repository-bun repository for records.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Record) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

// BunRepository implements Repository with optional caching. Lookups by id
// go through the cache; filtered listings read through to the database
// because their criteria closures do not produce stable cache keys.
//
// Writes are committed before the cache is invalidated. A failed
// invalidation is logged and does not fail the write; the stale entries
// expire with the cache TTL.
type BunRepository struct {
	db           *bun.DB
	base         repository.Repository[*Record]
	repo         repository.Repository[*Record]
	cacheService cache.CacheService
	cachePrefix  string
	logger       interfaces.Logger
}

// NewBunRepository creates a content repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a content repository with caching services.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	repo := base
	var svc cache.CacheService
	prefix := ""
	if cacheService != nil && serializer != nil {
		repo = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
		prefix = recordCacheNamespace + cache.KeySeparator
	}
	return &BunRepository{db: db, base: base, repo: repo, cacheService: svc, cachePrefix: prefix, logger: logging.NoOp()}
}

// WithLogger sets the logger used for cache invalidation warnings.
func (r *BunRepository) WithLogger(logger interfaces.Logger) *BunRepository {
	if logger != nil {
		r.logger = logger
	}
	return r
}

func (r *BunRepository) List(ctx context.Context, kind Kind, locale string) ([]*Record, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	records, _, err := r.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if kind != "" {
				q = q.Where("?TableAlias.kind = ?", kind)
			}
			if locale != "" {
				q = q.Where("?TableAlias.locale = ?", locale)
			}
			return q.OrderExpr("?TableAlias.sort_order ASC").
				OrderExpr("?TableAlias.created_at ASC").
				OrderExpr("?TableAlias.locale ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", recordNamespace, err)
	}
	sortRecords(records)
	return records, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, recordNamespace, id.String())
	}
	return record, nil
}

func (r *BunRepository) ListGroup(ctx context.Context, groupID uuid.UUID) ([]*Record, error) {
	records, _, err := r.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.group_id = ?", groupID).
				OrderExpr("?TableAlias.locale ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", recordNamespace, err)
	}
	sortRecords(records)
	return records, nil
}

func (r *BunRepository) Create(ctx context.Context, record *Record) (*Record, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	r.invalidateAfterWrite(ctx, "create")
	return created, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Record) (*Record, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, recordNamespace, record.ID.String())
	}
	r.invalidateAfterWrite(ctx, "update")
	return updated, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Record{ID: id}); err != nil {
		return err
	}
	r.invalidateAfterWrite(ctx, "delete")
	return nil
}

// DeleteGroup removes every locale variant of a group in one transaction.
func (r *BunRepository) DeleteGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("%s repository: database not configured", recordNamespace)
	}

	var affected int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*Record)(nil)).
			Where("?TableAlias.group_id = ?", groupID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete content group: %w", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.invalidateAfterWrite(ctx, "delete_group")
	return int(affected), nil
}

// InvalidateCache drops every cached record lookup.
func (r *BunRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunRepository) invalidateAfterWrite(ctx context.Context, op string) {
	if err := r.InvalidateCache(ctx); err != nil {
		r.logger.WithContext(ctx).Warn("content.cache_invalidate_failed", "op", op, "error", err)
	}
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
