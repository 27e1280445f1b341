package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

const (
	dashboardKeyPrefix  = "newage_bi:dashboard"
	scanBatchSize       = 100
	defaultDashboardTTL = time.Minute
)

// DashboardCache stores rendered dashboard payloads keyed by dataset
// generation plus filter selection. Entries are TTL-bounded and swept
// wholesale when a new dataset lands.
type DashboardCache interface {
	Get(ctx context.Context, version int64, f domain.FilterState) (*domain.DashboardData, bool, error)
	Set(ctx context.Context, version int64, f domain.FilterState, data *domain.DashboardData) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

// NewDashboardCache wraps a redis client; ttl <= 0 takes the default.
func NewDashboardCache(client *redis.Client, ttl time.Duration) DashboardCache {
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}
	return &redisDashboardCache{client: client, ttl: ttl}
}

// NewNoopDashboardCache is used when caching is disabled.
func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, version int64, f domain.FilterState) (*domain.DashboardData, bool, error) {
	payload, err := c.client.Get(ctx, buildDashboardKey(version, f)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var data domain.DashboardData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}
	return &data, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, version int64, f domain.FilterState, data *domain.DashboardData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}
	if err := c.client.Set(ctx, buildDashboardKey(version, f), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, dashboardKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}

func (n *noopDashboardCache) Get(context.Context, int64, domain.FilterState) (*domain.DashboardData, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(context.Context, int64, domain.FilterState, *domain.DashboardData) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(context.Context) error {
	return nil
}

func buildDashboardKey(version int64, f domain.FilterState) string {
	payload, _ := json.Marshal(f)
	hash := sha1.Sum(payload)
	return fmt.Sprintf("%s:%d:%s", dashboardKeyPrefix, version, hex.EncodeToString(hash[:]))
}
