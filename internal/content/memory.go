package content

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Record
}

// NewMemoryRepository constructs an in-memory content store.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Record)}
}

func (m *memoryRepository) List(_ context.Context, kind Kind, locale string) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locale = strings.ToLower(strings.TrimSpace(locale))
	records := make([]*Record, 0, len(m.byID))
	for _, record := range m.byID {
		if kind != "" && record.Kind != kind {
			continue
		}
		if locale != "" && record.Locale != locale {
			continue
		}
		records = append(records, record.Clone())
	}
	sortRecords(records)
	return records, nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "content_record", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryRepository) ListGroup(_ context.Context, groupID uuid.UUID) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*Record
	for _, record := range m.byID {
		if record.GroupID == groupID {
			records = append(records, record.Clone())
		}
	}
	sortRecords(records)
	return records, nil
}

func (m *memoryRepository) Create(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[record.ID]; exists {
		return nil, ErrDuplicateLocale
	}
	cloned := record.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryRepository) Update(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "content_record", Key: record.ID.String()}
	}
	cloned := record.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "content_record", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryRepository) DeleteGroup(_ context.Context, groupID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for id, record := range m.byID {
		if record.GroupID == groupID {
			delete(m.byID, id)
			deleted++
		}
	}
	return deleted, nil
}
