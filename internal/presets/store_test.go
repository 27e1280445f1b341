package presets

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return map[string]Store{
		"redis":  NewRedisStore(client),
		"memory": NewMemoryStore(),
	}
}

func TestFirstSavedBecomesDefault(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first, err := store.Save(ctx, "exports", domain.FilterState{Period: domain.PeriodLast6Months})
			require.NoError(t, err)
			assert.True(t, first.IsDefault)
			assert.NotEmpty(t, first.ID)
			assert.False(t, first.CreatedAt.IsZero())

			second, err := store.Save(ctx, "air only", domain.FilterState{Service: []string{"AIR"}})
			require.NoError(t, err)
			assert.False(t, second.IsDefault)
			assert.NotEqual(t, first.ID, second.ID)

			list, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "exports", list[0].Name)
		})
	}
}

func TestDeleteDefaultPromotesFirstRemaining(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first, err := store.Save(ctx, "a", domain.FilterState{})
			require.NoError(t, err)
			_, err = store.Save(ctx, "b", domain.FilterState{})
			require.NoError(t, err)

			require.NoError(t, store.Delete(ctx, first.ID))

			def, err := store.GetDefault(ctx)
			require.NoError(t, err)
			require.NotNil(t, def)
			assert.Equal(t, "b", def.Name)
		})
	}
}

func TestSetDefaultIsExclusive(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := store.Save(ctx, "a", domain.FilterState{})
			require.NoError(t, err)
			second, err := store.Save(ctx, "b", domain.FilterState{})
			require.NoError(t, err)

			require.NoError(t, store.SetDefault(ctx, second.ID))

			list, err := store.List(ctx)
			require.NoError(t, err)
			for _, f := range list {
				assert.Equal(t, f.ID == second.ID, f.IsDefault)
			}
		})
	}
}

func TestRename(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			f, err := store.Save(ctx, "old", domain.FilterState{})
			require.NoError(t, err)

			require.NoError(t, store.Rename(ctx, f.ID, "new"))
			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, "new", list[0].Name)
		})
	}
}

func TestUnknownIDErrors(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			assert.ErrorIs(t, store.Rename(ctx, "nope", "x"), ErrNotFound)
			assert.ErrorIs(t, store.Delete(ctx, "nope"), ErrNotFound)
			assert.ErrorIs(t, store.SetDefault(ctx, "nope"), ErrNotFound)
		})
	}
}

func TestGetDefaultEmpty(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			def, err := store.GetDefault(context.Background())
			require.NoError(t, err)
			assert.Nil(t, def)
		})
	}
}

func TestSavedFiltersRoundTripFilters(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(client)

	want := domain.FilterState{
		Period:  domain.PeriodLast2Months,
		Country: []string{"IN", "US"},
		Service: []string{"AIR"},
		ChartFilters: domain.ChartFilters{
			Customer: "Acme",
		},
	}
	f, err := store.Save(context.Background(), "roundtrip", want)
	require.NoError(t, err)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, want, list[0].Filters)
	assert.Equal(t, f.ID, list[0].ID)
}
