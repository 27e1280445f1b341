package presets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// storageKey holds the whole preset list as one JSON document. Presets are
// few and always read together, so a single key keeps the mutation rules
// atomic under WATCH-free read-modify-write from a single dashboard owner.
const storageKey = "newage_bi:saved_filters"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore persists presets in redis under a fixed key.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) load(ctx context.Context) ([]domain.SavedFilter, error) {
	payload, err := s.client.Get(ctx, storageKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var list []domain.SavedFilter
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("decode saved filters: %w", err)
	}
	return list, nil
}

func (s *redisStore) persist(ctx context.Context, list []domain.SavedFilter) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode saved filters: %w", err)
	}
	if err := s.client.Set(ctx, storageKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *redisStore) Save(ctx context.Context, name string, filters domain.FilterState) (domain.SavedFilter, error) {
	list, err := s.load(ctx)
	if err != nil {
		return domain.SavedFilter{}, err
	}
	f := newSavedFilter(name, filters, len(list) == 0)
	list = appendFilter(list, f)
	if err := s.persist(ctx, list); err != nil {
		return domain.SavedFilter{}, err
	}
	return list[len(list)-1], nil
}

func (s *redisStore) List(ctx context.Context) ([]domain.SavedFilter, error) {
	return s.load(ctx)
}

func (s *redisStore) Rename(ctx context.Context, id, name string) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := renameFilter(list, id, name); err != nil {
		return err
	}
	return s.persist(ctx, list)
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	list, err = deleteFilter(list, id)
	if err != nil {
		return err
	}
	return s.persist(ctx, list)
}

func (s *redisStore) SetDefault(ctx context.Context, id string) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := setDefaultFilter(list, id); err != nil {
		return err
	}
	return s.persist(ctx, list)
}

func (s *redisStore) GetDefault(ctx context.Context) (*domain.SavedFilter, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return defaultOf(list), nil
}
