package handler

import (
	"context"

	"github.com/hibiken/asynq"

	"ah_sniper/internal/worker"
)

// ScanEnqueuer pushes ad-hoc scan tasks onto the queue.
type ScanEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Handler struct {
	registry *worker.Registry
	enqueuer ScanEnqueuer
	queue    string
}

func New(registry *worker.Registry, enqueuer ScanEnqueuer, queue string) *Handler {
	return &Handler{
		registry: registry,
		enqueuer: enqueuer,
		queue:    queue,
	}
}

func asynqQueue(queue string) []asynq.Option {
	if queue == "" {
		return nil
	}

	return []asynq.Option{asynq.Queue(queue)}
}
