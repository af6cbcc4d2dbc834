package overrides

import (
	"context"
	"errors"
)

// ErrOverridesNotFound is returned when a locale has no stored overrides.
var ErrOverridesNotFound = errors.New("overrides: no overrides stored for locale")

// Repository persists layout overrides keyed by locale.
type Repository interface {
	Get(ctx context.Context, locale string) (StoredOverrides, error)
	Put(ctx context.Context, stored StoredOverrides) (StoredOverrides, error)
	Delete(ctx context.Context, locale string) error
	List(ctx context.Context) ([]StoredOverrides, error)
}
