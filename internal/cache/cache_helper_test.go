package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheHelper(client, "test:"), mr
}

func TestGetSetRoundTrip(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, helper.Set(ctx, "overview", payload{Name: "dash", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, helper.Get(ctx, "overview", &got))
	assert.Equal(t, "dash", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestGetMissReturnsNotFound(t *testing.T) {
	helper, _ := newTestCache(t)

	var got map[string]string
	err := helper.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestNilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "")
	ctx := context.Background()

	assert.NoError(t, helper.Set(ctx, "k", "v", time.Minute))
	assert.ErrorIs(t, helper.Get(ctx, "k", new(string)), ErrCacheNotAvailable)
	assert.NoError(t, helper.Delete(ctx, "k"))
	assert.NoError(t, helper.InvalidatePattern(ctx, "*"))
}

func TestCacheOrExecuteFetchesOnceThenHits(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return map[string]int{"jobs": 7}, nil
	}

	var first map[string]int
	require.NoError(t, helper.CacheOrExecute(ctx, "counts", &first, time.Minute, fetch))
	assert.Equal(t, 7, first["jobs"])
	assert.Equal(t, 1, calls)

	// The async set may still be in flight; wait for the key.
	require.Eventually(t, func() bool {
		ok, err := helper.Exists(ctx, "counts")
		return err == nil && ok
	}, 2*time.Second, 10*time.Millisecond)

	var second map[string]int
	require.NoError(t, helper.CacheOrExecute(ctx, "counts", &second, time.Minute, fetch))
	assert.Equal(t, 7, second["jobs"])
	assert.Equal(t, 1, calls)
}

func TestInvalidatePattern(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, helper.Set(ctx, "list:all", []int{1}, time.Minute))
	require.NoError(t, helper.Set(ctx, "list:open", []int{2}, time.Minute))
	require.NoError(t, helper.Set(ctx, "id:5", 5, time.Minute))

	require.NoError(t, helper.InvalidatePattern(ctx, "list:*"))

	ok, err := helper.Exists(ctx, "list:all")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = helper.Exists(ctx, "id:5")
	require.NoError(t, err)
	assert.True(t, ok)
}
