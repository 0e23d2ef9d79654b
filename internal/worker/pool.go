package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueImport = "jobs:import"
	QueueEmail  = "jobs:email"
)

// cancelKeyPrefix marks advisory cancellation requests for import jobs.
const cancelKeyPrefix = "import:cancel:"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueImport pushes a supplier synchronization job.
func (d *Dispatcher) EnqueueImport(ctx context.Context, payload ImportJobPayload) error {
	return d.enqueue(ctx, QueueImport, "import", payload)
}

// EnqueueEmail pushes a notification email job.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

// RequestImportCancel sets the advisory cancel flag for a running import.
// The flag expires on its own so a crashed worker cannot leave it behind
// blocking a future sync.
func (d *Dispatcher) RequestImportCancel(ctx context.Context, jobID uuid.UUID) error {
	return d.rdb.Set(ctx, cancelKeyPrefix+jobID.String(), "1", 24*time.Hour).Err()
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// cancelRequested checks the advisory flag for a job.
func cancelRequested(ctx context.Context, rdb *redis.Client, jobID uuid.UUID) bool {
	n, err := rdb.Exists(ctx, cancelKeyPrefix+jobID.String()).Result()
	return err == nil && n > 0
}

// WorkerHandlers groups the per-queue processors wired in the composition
// root (cmd/server).
type WorkerHandlers struct {
	Import *ImportWorker
	Email  *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueImport, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, "unknown", nil, fmt.Sprintf("unmarshal: %v", err), 0)
		return
	}

	switch queue {
	case QueueImport:
		handlers.Import.Process(ctx, job.Payload)
	case QueueEmail:
		handlers.Email.Process(ctx, job.Payload)
	default:
		log.Error().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue")
	}
}
