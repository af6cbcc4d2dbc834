package overrides

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryRepository keeps overrides in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]StoredOverrides
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]StoredOverrides)}
}

func (r *MemoryRepository) Get(_ context.Context, locale string) (StoredOverrides, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[localeKey(locale)]
	if !ok {
		return StoredOverrides{}, ErrOverridesNotFound
	}
	return cloneStored(stored)
}

func (r *MemoryRepository) Put(_ context.Context, stored StoredOverrides) (StoredOverrides, error) {
	stored.Locale = localeKey(stored.Locale)
	copied, err := cloneStored(stored)
	if err != nil {
		return StoredOverrides{}, err
	}
	r.mu.Lock()
	r.items[stored.Locale] = copied
	r.mu.Unlock()
	return cloneStored(copied)
}

func (r *MemoryRepository) Delete(_ context.Context, locale string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := localeKey(locale)
	if _, ok := r.items[key]; !ok {
		return ErrOverridesNotFound
	}
	delete(r.items, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]StoredOverrides, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]StoredOverrides, 0, len(r.items))
	for _, locale := range slices.Sorted(maps.Keys(r.items)) {
		copied, err := cloneStored(r.items[locale])
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

// cloneStored deep-copies through JSON so callers never share slices or
// pointers with the store.
func cloneStored(in StoredOverrides) (StoredOverrides, error) {
	raw, err := json.Marshal(in.Overrides)
	if err != nil {
		return StoredOverrides{}, err
	}
	out := StoredOverrides{Locale: in.Locale, UpdatedAt: in.UpdatedAt}
	if err := json.Unmarshal(raw, &out.Overrides); err != nil {
		return StoredOverrides{}, err
	}
	return out, nil
}

func localeKey(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
