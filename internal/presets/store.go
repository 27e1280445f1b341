package presets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// ErrNotFound is returned when a preset id does not exist.
var ErrNotFound = errors.New("saved filter not found")

// Store persists named filter presets. The first preset ever saved becomes
// the default; deleting the default promotes the first remaining one.
type Store interface {
	Save(ctx context.Context, name string, filters domain.FilterState) (domain.SavedFilter, error)
	List(ctx context.Context) ([]domain.SavedFilter, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) error
	GetDefault(ctx context.Context) (*domain.SavedFilter, error)
}

func newSavedFilter(name string, filters domain.FilterState, first bool) domain.SavedFilter {
	return domain.SavedFilter{
		ID:        fmt.Sprintf("filter_%d", time.Now().UnixMilli()),
		Name:      name,
		Filters:   filters,
		IsDefault: first,
		CreatedAt: time.Now().UTC(),
	}
}

// The list-mutation rules live here so the redis and memory stores cannot
// drift apart.

func appendFilter(list []domain.SavedFilter, f domain.SavedFilter) []domain.SavedFilter {
	// Guard against two saves landing on the same millisecond id.
	for containsID(list, f.ID) {
		f.ID += "x"
	}
	return append(list, f)
}

func containsID(list []domain.SavedFilter, id string) bool {
	for _, f := range list {
		if f.ID == id {
			return true
		}
	}
	return false
}

func renameFilter(list []domain.SavedFilter, id, name string) error {
	for i := range list {
		if list[i].ID == id {
			list[i].Name = name
			return nil
		}
	}
	return ErrNotFound
}

func deleteFilter(list []domain.SavedFilter, id string) ([]domain.SavedFilter, error) {
	out := make([]domain.SavedFilter, 0, len(list))
	found := false
	for _, f := range list {
		if f.ID == id {
			found = true
			continue
		}
		out = append(out, f)
	}
	if !found {
		return nil, ErrNotFound
	}
	if len(out) > 0 && !hasDefault(out) {
		out[0].IsDefault = true
	}
	return out, nil
}

func setDefaultFilter(list []domain.SavedFilter, id string) error {
	if !containsID(list, id) {
		return ErrNotFound
	}
	for i := range list {
		list[i].IsDefault = list[i].ID == id
	}
	return nil
}

func hasDefault(list []domain.SavedFilter) bool {
	for _, f := range list {
		if f.IsDefault {
			return true
		}
	}
	return false
}

func defaultOf(list []domain.SavedFilter) *domain.SavedFilter {
	for i := range list {
		if list[i].IsDefault {
			f := list[i]
			return &f
		}
	}
	return nil
}
