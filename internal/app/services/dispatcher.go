package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/sharesuki/internal/pkg/taskqueue"
)

// Job names as they appear in the logs
const (
	JobNotifyMutualMatches = "notify-mutual-matches"
	JobNotifyAll           = "notify-all"
)

// JobQueue accepts background work without blocking
type JobQueue interface {
	Enqueue(name string, fn taskqueue.JobFunc) (uuid.UUID, error)
}

// Dispatcher turns notification passes into background jobs
type Dispatcher struct {
	queue    JobQueue
	notifier NotificationService
	logger   zerolog.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(queue JobQueue, notifier NotificationService, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		queue:    queue,
		notifier: notifier,
		logger:   logger,
	}
}

// DispatchMutualMatches queues a notification pass for recordID
func (d *Dispatcher) DispatchMutualMatches(recordID int64) (uuid.UUID, error) {
	jobID, err := d.queue.Enqueue(JobNotifyMutualMatches, func(ctx context.Context) error {
		_, err := d.notifier.NotifyMutualMatches(ctx, recordID)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	d.logger.Debug().Int64("recordId", recordID).Str("jobId", jobID.String()).Msg("Mutual match notification queued")
	return jobID, nil
}

// DispatchNotifyAll queues a full matching run
func (d *Dispatcher) DispatchNotifyAll() (uuid.UUID, error) {
	jobID, err := d.queue.Enqueue(JobNotifyAll, func(ctx context.Context) error {
		_, err := d.notifier.NotifyAll(ctx)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	d.logger.Info().Str("jobId", jobID.String()).Msg("Full matching run queued")
	return jobID, nil
}
