package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	Chain     bool      `json:"chain"`
	CheckedAt time.Time `json:"checkedAt"`
}

// ChainPinger reports whether the Solana RPC endpoint is reachable.
type ChainPinger interface {
	Ping(ctx context.Context) error
}

var (
	currentHealth HealthStatus
	healthKnown   bool
	mu            sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot and whether the
// monitor has produced one yet.
func GetHealthStatus() (HealthStatus, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth, healthKnown
}

// StartHealthMonitor performs periodic health checks and updates
// in-memory state. The first check runs immediately so /health never
// serves a zero-value snapshot.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client, chain ChainPinger) {
	check := func() {
		ctx := context.Background()

		redisHealth := make([]bool, 0, len(redisClients))
		for _, client := range redisClients {
			redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
		}

		mongoHealthy := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil

		chainHealthy := false
		if chain != nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			chainHealthy = chain.Ping(pingCtx) == nil
			cancel()
		}

		mu.Lock()
		currentHealth = HealthStatus{
			Mongo:     mongoHealthy,
			Redis:     redisHealth,
			Chain:     chainHealthy,
			CheckedAt: time.Now(),
		}
		healthKnown = true
		mu.Unlock()
	}

	go func() {
		check()

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check()
		}
	}()
}
