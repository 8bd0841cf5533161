package database

import (
	"context"
	"crm/utils"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ConnectRedis returns nil when REDIS_URI is not configured; every consumer
// degrades to single-instance behaviour in that case.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	redisURI := os.Getenv(utils.REDIS_URI)
	if redisURI == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, fmt.Errorf("[Redis] parse uri: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("[Redis] ping: %w", err)
	}
	return rdb, nil
}

// Cache is a JSON cache and lock helper over an optional Redis client. A nil
// client turns every lookup into a miss and every lock into a grant.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache entry is not valid json")
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *Cache) DeletePrefix(ctx context.Context, prefix string) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
	}
}

// TryLock takes key with SET NX for ttl. release deletes the key only while
// it still holds our token.
func (c *Cache) TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error) {
	if c == nil || c.rdb == nil {
		return func() {}, true, nil
	}

	token := uuid.NewString()
	ok, err := c.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return func() {}, false, fmt.Errorf("[Redis] lock %s: %w", key, err)
	}
	if !ok {
		return func() {}, false, nil
	}

	return func() {
		if current, err := c.rdb.Get(context.WithoutCancel(ctx), key).Result(); err == nil && current == token {
			c.rdb.Del(context.WithoutCancel(ctx), key)
		}
	}, true, nil
}
