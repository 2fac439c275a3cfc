package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRateLimitRepository_Hit(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewRateLimitRepository(client, testLogger)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, resetIn, err := repo.Hit(ctx, "10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
		assert.LessOrEqual(t, resetIn, time.Minute)
		assert.Positive(t, resetIn)
	}

	other, _, err := repo.Hit(ctx, "10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, other)

	// a later hit must not extend the window
	mr.FastForward(30 * time.Second)
	_, resetIn, err := repo.Hit(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.LessOrEqual(t, resetIn, 30*time.Second)

	mr.FastForward(31 * time.Second)
	count, _, err := repo.Hit(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRateLimitRepository_RedisDown(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewRateLimitRepository(client, testLogger)
	mr.Close()

	_, _, err := repo.Hit(context.Background(), "10.0.0.1", time.Minute)
	assert.Error(t, err)
}
