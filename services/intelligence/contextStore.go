// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"time"

	"droptruck/models"

	"github.com/go-redis/redis/v8"
)

const callContextPrefix = "call:ctx:"

// RedisContextStore caches a per-call context snapshot so mid-call state can
// be inspected without touching the live session. A nil client disables the
// store; writes are best-effort.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*models.CallContext, error) {
	if s.client == nil {
		return &models.CallContext{}, nil
	}
	data, err := s.client.Get(ctx, callContextPrefix+sessionID).Result()
	if err == redis.Nil {
		return &models.CallContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var callCtx models.CallContext
	if err := json.Unmarshal([]byte(data), &callCtx); err != nil {
		return nil, err
	}
	return &callCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, callCtx *models.CallContext) error {
	if s.client == nil {
		return nil
	}
	b, err := json.Marshal(callCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, callContextPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, callContextPrefix+sessionID).Err()
}
