// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"droptruck/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ContextCacheClient is the Redis client backing per-call context snapshots.
var ContextCacheClient *redis.Client

// InitContextCache initializes the Redis client for call-context caching.
// Redis is an optional collaborator: if it is unreachable the agent keeps
// running with context caching disabled.
func InitContextCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisContextDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis unavailable, call-context caching disabled", zap.Error(err))
		return
	}
	ContextCacheClient = client
}

// GetContextCacheClient returns the call-context cache client, or nil when
// caching is disabled.
func GetContextCacheClient() *redis.Client {
	return ContextCacheClient
}
