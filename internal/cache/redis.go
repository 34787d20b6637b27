// Package cache keeps a short-lived copy of the public post feed in Redis.
// The database stays authoritative: every cache failure degrades to a miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baharkarakas/studygo-backend/internal/metrics"
	"github.com/baharkarakas/studygo-backend/internal/models"
)

const (
	FeedKey = "posts:feed"
	// FeedGenKey counts invalidations; a feed read under an older
	// generation is never written back.
	FeedGenKey = "posts:feed:gen"
)

var errStaleFeed = errors.New("feed invalidated during read")

type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			metrics.CacheErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Connect accepts either a redis:// URL or a bare host:port.
func Connect(ctx context.Context, addr string, ttl time.Duration) (*FeedCache, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return NewFeedCache(rdb, ttl), nil
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	rdb.AddHook(metricsHook{})
	return &FeedCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached feed; ok is false on a miss or any redis/decoding error.
func (c *FeedCache) Get(ctx context.Context) ([]models.Post, bool) {
	b, err := c.rdb.Get(ctx, FeedKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "feed cache get", "err", err)
		}
		return nil, false
	}
	var posts []models.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		slog.WarnContext(ctx, "feed cache decode", "err", err)
		return nil, false
	}
	return posts, true
}

// Generation returns the current invalidation count. Read it before loading
// the feed from the database and hand it to Set. ok is false when redis is
// unreachable, in which case the caller should skip Set.
func (c *FeedCache) Generation(ctx context.Context) (int64, bool) {
	gen, err := c.rdb.Get(ctx, FeedGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "feed cache generation", "err", err)
		return 0, false
	}
	return gen, true
}

// Set stores posts unless Invalidate ran after gen was read.
func (c *FeedCache) Set(ctx context.Context, gen int64, posts []models.Post) {
	b, err := json.Marshal(posts)
	if err != nil {
		return
	}
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, FeedGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleFeed
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, FeedKey, b, c.ttl)
			return nil
		})
		return err
	}, FeedGenKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleFeed), errors.Is(err, redis.TxFailedErr):
		slog.DebugContext(ctx, "feed cache set skipped, invalidated during read")
	default:
		slog.WarnContext(ctx, "feed cache set", "err", err)
	}
}

// Invalidate bumps the generation and drops the cached feed in one transaction.
func (c *FeedCache) Invalidate(ctx context.Context) {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, FeedGenKey)
		p.Del(ctx, FeedKey)
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "feed cache invalidate", "err", err)
	}
}

func (c *FeedCache) Close() error { return c.rdb.Close() }
