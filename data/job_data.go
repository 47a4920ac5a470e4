package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

type JobType string

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job is a unit of background work persisted in the jobs table.
type Job struct {
	bun.BaseModel `bun:"table:jobs"`

	ID         int `bun:",pk,autoincrement"`
	Type       JobType
	Status     JobStatus
	Payload    json.RawMessage `bun:"type:jsonb"`
	Attempts   int             `bun:",notnull,default:0"`
	Error      string          `bun:",nullzero"`
	CreatedAt  time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
	StartedAt  time.Time       `bun:",nullzero"`
	FinishedAt time.Time       `bun:",nullzero"`
}

// JobStore reads and writes jobs.
type JobStore struct {
	db bun.IDB
}

func NewJobStore(db bun.IDB) *JobStore {
	return &JobStore{db: db}
}

func (s *JobStore) CreateJob(ctx context.Context, jobType JobType, payload json.RawMessage) (*Job, error) {
	job := &Job{
		Type:    jobType,
		Status:  JobStatusPending,
		Payload: payload,
	}

	_, err := s.db.
		NewInsert().
		Model(job).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return job, nil
}

// ClaimPendingJob marks the oldest pending job as running and returns it.
// Concurrent workers never claim the same job. It returns nil, nil when no job
// is waiting.
func (s *JobStore) ClaimPendingJob(ctx context.Context) (*Job, error) {
	job := new(Job)

	err := s.db.NewRaw(`
		UPDATE jobs SET status = ?, started_at = now(), attempts = attempts + 1
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = ?
			ORDER BY created_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		JobStatusRunning, JobStatusPending,
	).Scan(ctx, job)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return job, nil
}

func (s *JobStore) UpdateJob(ctx context.Context, job *Job) error {
	_, err := s.db.
		NewUpdate().
		Model(job).
		WherePK().
		OmitZero().
		Exec(ctx)

	return err
}

// RequeueStaleJobs puts jobs left running for longer than olderThan back in the
// queue, e.g. after a crash.
func (s *JobStore) RequeueStaleJobs(ctx context.Context, olderThan time.Duration) (int, error) {
	res, err := s.db.
		NewUpdate().
		Model((*Job)(nil)).
		Set("status = ?", JobStatusPending).
		Where("status = ?", JobStatusRunning).
		Where("started_at < ?", time.Now().Add(-olderThan)).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}
