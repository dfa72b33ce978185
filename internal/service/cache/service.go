package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
	"github.com/careerpilot/linkedin-optimizer-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService wraps Redis. A nil *CacheService is valid and degrades to
// cache misses, so callers never branch on whether Redis is configured.
type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCacheService(cfg CacheConfig, logger *zap.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisConfig.ReadyTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &CacheService{
		client: client,
		logger: logger,
	}, nil
}

func (c *CacheService) Get(ctx context.Context, key string, dest any) error {
	if c == nil || c.client == nil {
		return nil
	}

	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // Key doesn't exist - not an error
	}
	if err != nil {
		c.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("get failed", "get", key, err)
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			c.logger.Error("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
			return errors.NewCacheError("unmarshal failed", "get", key, err)
		}
	}

	return nil
}

func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		c.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("set failed", "set", key, err)
	}

	return nil
}

func (c *CacheService) Del(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

func (c *CacheService) Keys(ctx context.Context, pattern string) ([]string, error) {
	if c == nil || c.client == nil {
		return []string{}, nil
	}

	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.logger.Error("Cache keys search failed", zap.String("pattern", pattern), zap.Error(err))
		return []string{}, errors.NewCacheError("keys search failed", "keys", pattern, err)
	}
	return keys, nil
}

func (c *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Error("Cache exists failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewCacheError("exists failed", "exists", key, err)
	}
	return count > 0, nil
}

func (c *CacheService) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		c.logger.Error("Cache expire failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("expire failed", "expire", key, err)
	}
	return nil
}

func (c *CacheService) Close() error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	c.logger.Info("Redis disconnected")
	return nil
}

func (c *CacheService) IsConnected(ctx context.Context) bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.Ping(ctx).Err() == nil
}

func (c *CacheService) WaitUntilReady(ctx context.Context, timeout time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for Redis to be ready")
		case <-ticker.C:
			if c.IsConnected(ctx) {
				return nil
			}
		}
	}
}

// Key builders. All typed helpers below treat errors as cache misses;
// the callers' sources of truth are the upstream APIs.

func ProfileKey(username string) string {
	return "profile:" + util.Normalize(username)
}

func JobSearchKey(role, location string) string {
	return "jobsearch:" + util.Normalize(role) + "|" + util.Normalize(location)
}

func EmbeddingKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embedding:" + hex.EncodeToString(sum[:16])
}

func (c *CacheService) GetProfile(ctx context.Context, username string) (*domain.Profile, bool) {
	var profile domain.Profile
	if err := c.Get(ctx, ProfileKey(username), &profile); err != nil {
		return nil, false
	}
	if profile.Name == "" && profile.Username == "" {
		return nil, false
	}
	return &profile, true
}

func (c *CacheService) SetProfile(ctx context.Context, username string, profile *domain.Profile) {
	if err := c.Set(ctx, ProfileKey(username), profile, constants.CacheTTL.Profile); err != nil {
		c.logWarn("Failed to cache profile", zap.String("username", username), zap.Error(err))
	}
}

func (c *CacheService) GetJobSearch(ctx context.Context, role, location string) (*domain.JobDescription, bool) {
	var jd domain.JobDescription
	if err := c.Get(ctx, JobSearchKey(role, location), &jd); err != nil {
		return nil, false
	}
	if jd.Text == "" {
		return nil, false
	}
	return &jd, true
}

func (c *CacheService) SetJobSearch(ctx context.Context, role, location string, jd *domain.JobDescription) {
	if err := c.Set(ctx, JobSearchKey(role, location), jd, constants.CacheTTL.JobSearch); err != nil {
		c.logWarn("Failed to cache job search", zap.String("role", role), zap.Error(err))
	}
}

func (c *CacheService) GetEmbedding(ctx context.Context, text string) ([]float32, bool) {
	var vector []float32
	if err := c.Get(ctx, EmbeddingKey(text), &vector); err != nil {
		return nil, false
	}
	if len(vector) == 0 {
		return nil, false
	}
	return vector, true
}

func (c *CacheService) SetEmbedding(ctx context.Context, text string, vector []float32) {
	if err := c.Set(ctx, EmbeddingKey(text), vector, constants.CacheTTL.Embedding); err != nil {
		c.logWarn("Failed to cache embedding", zap.Error(err))
	}
}

func (c *CacheService) logWarn(msg string, fields ...zap.Field) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Warn(msg, fields...)
}
