// Package taskqueue runs fire-and-forget jobs on a bounded worker pool.
package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrQueueFull is returned by Enqueue when the buffer has no room.
	ErrQueueFull = errors.New("task queue is full")
	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("task queue is closed")
)

// Default pool dimensions
const (
	DefaultWorkers   = 4
	DefaultQueueSize = 256
)

// JobFunc is the body of a job. The context is detached from whoever
// enqueued the job.
type JobFunc func(ctx context.Context) error

// Job is a unit of background work
type Job struct {
	ID         uuid.UUID
	Name       string
	EnqueuedAt time.Time
	Run        JobFunc
}

// Config holds pool dimensions
type Config struct {
	Workers   int
	QueueSize int
}

// Stats is a snapshot of queue counters
type Stats struct {
	Pending   int    `json:"pending"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
}

// Queue is a bounded FIFO served by a fixed number of workers.
type Queue struct {
	jobs   chan Job
	group  errgroup.Group
	logger zerolog.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}

	completed atomic.Uint64
	failed    atomic.Uint64
}

// New starts the workers and returns a ready queue.
func New(config Config, logger zerolog.Logger) *Queue {
	if config.Workers < 1 {
		config.Workers = DefaultWorkers
	}
	if config.QueueSize < 1 {
		config.QueueSize = DefaultQueueSize
	}

	q := &Queue{
		jobs:   make(chan Job, config.QueueSize),
		logger: logger,
		done:   make(chan struct{}),
	}

	for i := 0; i < config.Workers; i++ {
		worker := i
		q.group.Go(func() error {
			for job := range q.jobs {
				q.run(worker, job)
			}
			return nil
		})
	}

	go func() {
		_ = q.group.Wait()
		close(q.done)
	}()

	logger.Debug().Int("workers", config.Workers).Int("queueSize", config.QueueSize).Msg("Task queue started")
	return q
}

// Enqueue schedules fn without blocking and returns the job id.
func (q *Queue) Enqueue(name string, fn JobFunc) (uuid.UUID, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return uuid.Nil, ErrQueueClosed
	}

	job := Job{
		ID:         uuid.New(),
		Name:       name,
		EnqueuedAt: time.Now(),
		Run:        fn,
	}

	select {
	case q.jobs <- job:
		return job.ID, nil
	default:
		return uuid.Nil, fmt.Errorf("%w: %s", ErrQueueFull, name)
	}
}

// Close stops intake, lets the workers drain every queued job and waits for
// them, or for ctx to end.
func (q *Queue) Close(ctx context.Context) error {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.jobs)
		q.mu.Unlock()
	})

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("task queue did not drain: %w", ctx.Err())
	}
}

// Stats returns the current counters
func (q *Queue) Stats() Stats {
	return Stats{
		Pending:   len(q.jobs),
		Completed: q.completed.Load(),
		Failed:    q.failed.Load(),
	}
}

func (q *Queue) run(worker int, job Job) {
	log := q.logger.With().
		Str("jobId", job.ID.String()).
		Str("job", job.Name).
		Int("worker", worker).
		Logger()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			q.failed.Add(1)
			log.Error().Interface("panic", r).Msg("Job panicked")
		}
	}()

	if err := job.Run(context.Background()); err != nil {
		q.failed.Add(1)
		log.Error().Err(err).Dur("took", time.Since(start)).Msg("Job failed")
		return
	}

	q.completed.Add(1)
	log.Debug().
		Dur("waited", start.Sub(job.EnqueuedAt)).
		Dur("took", time.Since(start)).
		Msg("Job completed")
}
