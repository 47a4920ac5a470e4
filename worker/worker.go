package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"findaccommodation/data"
)

var ErrUnknownJobType = errors.New("worker: unknown job type")

// DefaultMaxAttempts is how many times a failing job is claimed before it is
// marked failed for good.
const DefaultMaxAttempts = 3

// Store is the persistent queue workers pull jobs from.
type Store interface {
	ClaimPendingJob(ctx context.Context) (*data.Job, error)
	UpdateJob(ctx context.Context, job *data.Job) error
}

type JobHandler interface {
	Run(ctx context.Context) error
}

// JobFactory builds the handler for a job from its stored payload.
type JobFactory func(ctx context.Context, payload json.RawMessage) (JobHandler, error)

// Pool runs registered jobs claimed from a Store.
type Pool struct {
	store       Store
	poll        time.Duration
	maxAttempts int

	mu        sync.RWMutex
	factories map[data.JobType]JobFactory
}

func NewPool(store Store, poll time.Duration) *Pool {
	return &Pool{
		store:       store,
		poll:        poll,
		maxAttempts: DefaultMaxAttempts,
		factories:   make(map[data.JobType]JobFactory),
	}
}

// SetMaxAttempts changes how many claims a failing job gets. Values below one
// are treated as one.
func (p *Pool) SetMaxAttempts(n int) {
	p.maxAttempts = max(n, 1)
}

func (p *Pool) RegisterJob(jobType data.JobType, factory JobFactory) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.factories[jobType] = factory
}

func (p *Pool) factory(jobType data.JobType) (JobFactory, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.factories[jobType]
	return f, ok
}

// StartWorker processes jobs until ctx is done, sleeping for the poll interval
// whenever the queue is empty or unreachable.
func (p *Pool) StartWorker(ctx context.Context) {
	slog.Info("worker: started")
	defer slog.Info("worker: stopped")

	for {
		ran, err := p.RunOnce(ctx)
		if err != nil && ctx.Err() == nil {
			slog.Error("worker: " + err.Error())
		}
		if ran {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.poll):
		}
	}
}

// RunOnce claims and runs a single job. It reports whether a job was claimed.
func (p *Pool) RunOnce(ctx context.Context) (bool, error) {
	job, err := p.store.ClaimPendingJob(ctx)
	if err != nil {
		return false, fmt.Errorf("claim job: %w", err)
	}
	if job == nil {
		return false, nil
	}

	slog.Info(fmt.Sprintf("worker: starting job %d", job.ID), "type", job.Type)

	retryable, runErr := p.run(ctx, job)

	switch {
	case runErr != nil && retryable && job.Attempts < p.maxAttempts:
		job.Status = data.JobStatusPending
		job.Error = runErr.Error()
		slog.Warn(fmt.Sprintf("worker: job %d failed, requeued", job.ID), "attempt", job.Attempts, "error", runErr)
	case runErr != nil:
		job.FinishedAt = time.Now()
		job.Status = data.JobStatusFailed
		job.Error = runErr.Error()
		slog.Error(fmt.Sprintf("worker: job %d failed", job.ID), "error", runErr)
	default:
		job.FinishedAt = time.Now()
		job.Status = data.JobStatusCompleted
		slog.Info(fmt.Sprintf("worker: completed job %d", job.ID))
	}

	// The job outcome is recorded even when ctx was canceled mid-run.
	updateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := p.store.UpdateJob(updateCtx, job); err != nil {
		return true, fmt.Errorf("update job %d: %w", job.ID, err)
	}

	return true, nil
}

// run executes job. Only errors from the handler itself are retryable; an
// unknown type or a bad payload fails the same way every time.
func (p *Pool) run(ctx context.Context, job *data.Job) (bool, error) {
	factory, ok := p.factory(job.Type)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownJobType, job.Type)
	}

	handler, err := factory(ctx, job.Payload)
	if err != nil {
		return false, fmt.Errorf("build job: %w", err)
	}

	return true, handler.Run(ctx)
}
