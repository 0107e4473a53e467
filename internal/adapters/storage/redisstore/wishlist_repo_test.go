package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*miniredis.Miniredis, *WishlistRepo) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewWishlistRepo(client, "test:wishlist")
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return mr, repo
}

func TestWishlistRepo_KeepsInsertionOrderWithoutDuplicates(t *testing.T) {
	mr, repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "u1", "prod-9"))
	require.NoError(t, repo.Add(ctx, "u1", "prod-1"))
	require.NoError(t, repo.Add(ctx, "u1", "prod-9"))

	ids, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-9", "prod-1"}, ids)
	assert.True(t, mr.Exists("test:wishlist:u1"))

	require.NoError(t, repo.Remove(ctx, "u1", "prod-9"))
	require.NoError(t, repo.Remove(ctx, "u1", "missing"))
	ids, err = repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-1"}, ids)
}

func TestWishlistRepo_EmptyUser(t *testing.T) {
	_, repo := newTestRepo(t)

	ids, err := repo.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestWishlistRepo_ErrorsWhenRedisIsDown(t *testing.T) {
	mr, repo := newTestRepo(t)
	mr.Close()

	_, err := repo.List(context.Background(), "u1")
	assert.Error(t, err)
	assert.Error(t, repo.Add(context.Background(), "u1", "p1"))
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewClient(context.Background(), "::not a url")
	assert.Error(t, err)
}
