package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// HealthStatus represents current status of external services. A collaborator
// that was never configured reports nil rather than false.
type HealthStatus struct {
	Catalog   *bool     `json:"catalog"`
	Mongo     *bool     `json:"mongo"`
	Redis     *bool     `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. Any collaborator may be nil; it is then skipped.
func StartHealthMonitor(catalogDB *gorm.DB, mongoClient *mongo.Client, redisClient *redis.Client) {
	check := func() {
		ctx := context.Background()
		var status HealthStatus
		status.CheckedAt = time.Now()

		if catalogDB != nil {
			ok := false
			if sqlDB, err := catalogDB.DB(); err == nil {
				ok = sqlDB.PingContext(ctx) == nil
			}
			status.Catalog = &ok
		}
		if mongoClient != nil {
			ok := mongoClient.Ping(ctx, nil) == nil
			status.Mongo = &ok
		}
		if redisClient != nil {
			ok := redisClient.Ping(ctx).Err() == nil
			status.Redis = &ok
		}

		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	go func() {
		// First snapshot immediately so /health never serves a zero value.
		check()

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check()
		}
	}()
}
