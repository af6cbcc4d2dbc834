package content

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"
)

// Repository is the content store. An empty locale lists every locale.
type Repository interface {
	List(ctx context.Context, kind Kind, locale string) ([]*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	ListGroup(ctx context.Context, groupID uuid.UUID) ([]*Record, error)
	Create(ctx context.Context, record *Record) (*Record, error)
	Update(ctx context.Context, record *Record) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteGroup(ctx context.Context, groupID uuid.UUID) (int, error)
}

// sortRecords applies the listing order shared by every implementation.
func sortRecords(records []*Record) {
	slices.SortStableFunc(records, func(a, b *Record) int {
		return cmp.Or(
			cmp.Compare(a.SortOrder, b.SortOrder),
			a.CreatedAt.Compare(b.CreatedAt),
			cmp.Compare(a.Locale, b.Locale),
			cmp.Compare(a.ID.String(), b.ID.String()),
		)
	})
}
