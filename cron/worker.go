package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"receivault/config"
	syncsvc "receivault/services/sync"
	"receivault/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitInvalidationWorker runs the async worker in background. It drains
// the delayed cache-invalidation ladder enqueued after mutations.
func InitInvalidationWorker(cache *redis.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(syncsvc.TypeInvalidateVault, handleInvalidateTask(cache))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[InvalidationWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[InvalidationWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[InvalidationWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleInvalidateTask(cache *redis.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p syncsvc.InvalidatePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[InvalidationHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[InvalidationHandler] ♻️ Dropping caches for vault %s (rung %d)", p.VaultPDA, p.Attempt)

		// List keys fan out over status/cursor/limit; drop the whole
		// prefix. The transparency report is keyed per vault.
		syncsvc.DropCachesByPrefix(ctx, cache, utils.VaultCachePrefix)
		syncsvc.DropCachesByPrefix(ctx, cache, utils.PositionCachePrefix)
		syncsvc.DropCachesByPrefix(ctx, cache, utils.ActivityCachePrefix)
		cache.Del(ctx, utils.TransparencyCachePrefix+p.VaultPDA)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[InvalidationWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
