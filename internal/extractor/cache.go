package extractor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"llm_catalog/internal/entity"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "llm_catalog:extraction:"

// Cache 缓存抽取结果，相同请求在 TTL 内不重复调用模型
type Cache interface {
	Get(ctx context.Context, key string) (*entity.Extraction, bool)
	Set(ctx context.Context, key string, value *entity.Extraction, ttl time.Duration) error
}

type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*entity.Extraction, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			extractorLogger().Warn("read extraction cache failed", "key", key, "error", err)
		}
		return nil, false
	}

	var extraction entity.Extraction
	if err := json.Unmarshal(raw, &extraction); err != nil {
		return nil, false
	}
	return &extraction, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value *entity.Extraction, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func cacheKey(req entity.ScrapeRequest) string {
	sum := sha256.Sum256([]byte(req.DataType + "\x00" + req.URL + "\x00" + trimmed(req.ModelName) + "\x00" + trimmed(req.ProviderName)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
