package pagetitles

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Repository persists page title overrides.
type Repository interface {
	Create(ctx context.Context, override *Override) (*Override, error)
	Update(ctx context.Context, override *Override) (*Override, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Override, error)
	Find(ctx context.Context, pageKey, locale string) (*Override, error)
	List(ctx context.Context) ([]*Override, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func sortOverrides(items []*Override) {
	slices.SortFunc(items, func(a, b *Override) int {
		return cmp.Or(cmp.Compare(a.PageKey, b.PageKey), cmp.Compare(a.Locale, b.Locale))
	})
}

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Override
}

// NewMemoryRepository constructs an in-memory override store.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Override)}
}

func (m *memoryRepository) Create(_ context.Context, override *Override) (*Override, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byID[override.ID]; exists {
		return nil, ErrDuplicateOverride
	}
	m.byID[override.ID] = override.clone()
	return override.clone(), nil
}

func (m *memoryRepository) Update(_ context.Context, override *Override) (*Override, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[override.ID]; !ok {
		return nil, &NotFoundError{Resource: "page_title_override", Key: override.ID.String()}
	}
	m.byID[override.ID] = override.clone()
	return override.clone(), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Override, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page_title_override", Key: id.String()}
	}
	return record.clone(), nil
}

func (m *memoryRepository) Find(_ context.Context, pageKey, locale string) (*Override, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.byID {
		if record.PageKey == pageKey && record.Locale == locale {
			return record.clone(), nil
		}
	}
	return nil, &NotFoundError{Resource: "page_title_override", Key: pageKey + ":" + locale}
}

func (m *memoryRepository) List(_ context.Context) ([]*Override, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Override, 0, len(m.byID))
	for _, record := range m.byID {
		out = append(out, record.clone())
	}
	sortOverrides(out)
	return out, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "page_title_override", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}
