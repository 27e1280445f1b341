package presets

import (
	"context"
	"sync"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

type memoryStore struct {
	mu   sync.Mutex
	list []domain.SavedFilter
}

// NewMemoryStore keeps presets in process memory, used when redis is not
// configured.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Save(_ context.Context, name string, filters domain.FilterState) (domain.SavedFilter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := newSavedFilter(name, filters, len(s.list) == 0)
	s.list = appendFilter(s.list, f)
	return s.list[len(s.list)-1], nil
}

func (s *memoryStore) List(_ context.Context) ([]domain.SavedFilter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SavedFilter, len(s.list))
	copy(out, s.list)
	return out, nil
}

func (s *memoryStore) Rename(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return renameFilter(s.list, id, name)
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := deleteFilter(s.list, id)
	if err != nil {
		return err
	}
	s.list = list
	return nil
}

func (s *memoryStore) SetDefault(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setDefaultFilter(s.list, id)
}

func (s *memoryStore) GetDefault(_ context.Context) (*domain.SavedFilter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return defaultOf(s.list), nil
}
