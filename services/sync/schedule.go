// File: services/sync/schedule.go
package sync

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypeInvalidateVault is the queued task that drops a vault's cached
// responses.
const TypeInvalidateVault = "invalidate:vault"

// InvalidationDelays is the ladder of delayed cache drops enqueued after
// a mutation lands. Early rungs catch the confirmed view; later rungs
// catch finalization and any RPC nodes lagging behind it.
var InvalidationDelays = []time.Duration{
	2 * time.Second,
	3 * time.Second,
	5 * time.Second,
	5 * time.Second,
	10 * time.Second,
	10 * time.Second,
	15 * time.Second,
	15 * time.Second,
}

// InvalidatePayload is the task body for TypeInvalidateVault.
type InvalidatePayload struct {
	VaultPDA string `json:"vaultPda"`
	Attempt  int    `json:"attempt"`
}

// Scheduler enqueues the invalidation ladder. It satisfies the
// Invalidator interfaces declared by the vault and portfolio services.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler builds a scheduler over the queue's Redis connection.
func NewScheduler(redisOpts asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{client: asynq.NewClient(redisOpts)}
}

// ScheduleInvalidation enqueues one delayed cache drop per ladder rung.
// Offsets are cumulative from now, so the drops fire at 2s, 5s, 10s,
// 15s, 25s, 35s, 50s and 65s after the mutation.
func (s *Scheduler) ScheduleInvalidation(vaultPDA string) error {
	var offset time.Duration
	for attempt, delay := range InvalidationDelays {
		offset += delay
		payload, err := json.Marshal(InvalidatePayload{VaultPDA: vaultPDA, Attempt: attempt + 1})
		if err != nil {
			return fmt.Errorf("failed to marshal invalidation payload: %w", err)
		}
		task := asynq.NewTask(TypeInvalidateVault, payload)
		if _, err := s.client.Enqueue(task, asynq.ProcessIn(offset), asynq.MaxRetry(2)); err != nil {
			return fmt.Errorf("failed to enqueue invalidation (attempt %d): %w", attempt+1, err)
		}
	}
	return nil
}

// Close releases the underlying queue connection.
func (s *Scheduler) Close() error {
	return s.client.Close()
}
