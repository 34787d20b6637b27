package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/studygo-backend/internal/models"
)

func newTestCache(t *testing.T) (*FeedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewFeedCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestFeedCache_SetGetInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	posts := []models.Post{
		{ID: "p2", UserID: "u1", Content: "second", CreatedAt: time.Unix(200, 0).UTC()},
		{ID: "p1", UserID: "u1", Content: "first", CreatedAt: time.Unix(100, 0).UTC()},
	}
	c.Set(ctx, 0, posts)
	assert.True(t, mr.Exists(FeedKey))

	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, posts, got)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx)
	assert.False(t, ok)
}

func TestFeedCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 0, []models.Post{{ID: "p1"}})
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx)
	assert.False(t, ok)
}

func TestFeedCache_CorruptValueIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set(FeedKey, "{not json"))

	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}

func TestFeedCache_RedisDownIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	ctx := context.Background()
	assert.NotPanics(t, func() {
		c.Set(ctx, 0, []models.Post{{ID: "p1"}})
		c.Invalidate(ctx)
	})
	_, ok := c.Get(ctx)
	assert.False(t, ok)
	_, ok = c.Generation(ctx)
	assert.False(t, ok)
}

func TestFeedCache_SetAfterInvalidateIsDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	gen, ok := c.Generation(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(0), gen)

	// a reader loaded the feed under gen, then a write invalidated it
	c.Invalidate(ctx)
	c.Set(ctx, gen, []models.Post{{ID: "deleted"}})
	assert.False(t, mr.Exists(FeedKey))

	next, ok := c.Generation(ctx)
	require.True(t, ok)
	assert.Equal(t, gen+1, next)
	c.Set(ctx, next, []models.Post{{ID: "fresh"}})
	got, ok := c.Get(ctx)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Connect(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = Connect(context.Background(), "redis://%zz", time.Minute)
	assert.Error(t, err)
}
