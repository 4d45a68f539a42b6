package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Video responses are invalidated on every mutation anyway; the
// TTL is a backstop.
const (
	VideoCacheTTL      = 5 * time.Minute
	CollectionCacheTTL = 10 * time.Minute
)

// CacheService provides a Redis cache-aside layer for single-video lookups
// and shared-collection pages. Search result pages are never cached: their
// freshness contract is the denormalization invariant, not a TTL.
//
// OnHit and OnMiss, when set, are called on every cache read so the caller
// can feed hit-rate counters without this package depending on them.
type CacheService struct {
	rdb *redis.Client

	OnHit  func()
	OnMiss func()
}

func (c *CacheService) observe(hit bool) {
	if hit && c.OnHit != nil {
		c.OnHit()
	}
	if !hit && c.OnMiss != nil {
		c.OnMiss()
	}
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, caching silently degrades to a no-op.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetVideo retrieves a cached video response. Returns nil if not cached or
// cache is disabled.
func (c *CacheService) GetVideo(ctx context.Context, videoID int64) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoKey(videoID)).Bytes()
	if err == redis.Nil {
		c.observe(false)
		return nil, nil
	}
	c.observe(err == nil)
	return data, err
}

// SetVideo stores a video response in cache.
func (c *CacheService) SetVideo(ctx context.Context, videoID int64, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videoKey(videoID), b, VideoCacheTTL).Err()
}

// InvalidateVideo removes a video from cache (called after any mutation).
func (c *CacheService) InvalidateVideo(ctx context.Context, videoID int64) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, videoKey(videoID)).Err()
}

// GetSharedCollection retrieves a cached shared-collection response.
func (c *CacheService) GetSharedCollection(ctx context.Context, token string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, collectionKey(token)).Bytes()
	if err == redis.Nil {
		c.observe(false)
		return nil, nil
	}
	c.observe(err == nil)
	return data, err
}

// SetSharedCollection stores a shared-collection response in cache.
func (c *CacheService) SetSharedCollection(ctx context.Context, token string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, collectionKey(token), b, CollectionCacheTTL).Err()
}

// InvalidateSharedCollection removes a shared collection from cache.
func (c *CacheService) InvalidateSharedCollection(ctx context.Context, token string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, collectionKey(token)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func videoKey(videoID int64) string {
	return fmt.Sprintf("video:%d", videoID)
}

func collectionKey(token string) string {
	return fmt.Sprintf("collection:%s", token)
}
