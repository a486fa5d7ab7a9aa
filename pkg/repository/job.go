package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/cinematch/cinematch/pkg/domain"
)

// JobRepository handles the embedding job queue. Claims are conditional
// updates keyed on the pending status, so two workers can never hold the
// same job, and processing rows carry a lock timestamp for lease reclaim.
type JobRepository struct {
	db *sqlx.DB
}

// jobSQL represents an embedding job for SQL operations
type jobSQL struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	RatedItemID int64      `db:"rated_item_id"`
	Text        string     `db:"text"`
	Status      string     `db:"status"`
	Attempts    int        `db:"attempts"`
	MaxAttempts int        `db:"max_attempts"`
	NextAttempt time.Time  `db:"next_attempt"`
	LockedAt    *time.Time `db:"locked_at"`
	LastError   string     `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Enqueue inserts a pending job for a rated item and fills in the generated
// ID. Enqueueing the same rated item twice is a no-op returning the stored
// job, so redelivered reviews do not fork duplicate work.
func (r *JobRepository) Enqueue(ctx context.Context, job *domain.EmbeddingJob) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		now := time.Now().UTC()
		if job.MaxAttempts <= 0 {
			job.MaxAttempts = 3
		}

		res, err := r.db.ExecContext(ctx, `
			INSERT INTO embedding_jobs (user_id, rated_item_id, text, status, attempts, max_attempts, next_attempt, created_at, updated_at)
			VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?)
			ON CONFLICT(rated_item_id) DO NOTHING`,
			job.UserID, job.RatedItemID, job.Text, domain.JobPending, job.MaxAttempts, now, now, now)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("enqueue job: %w", err)}
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("enqueue job rows: %w", err)}
		}
		if rows == 0 {
			// duplicate delivery, adopt the stored job
			existing, err := r.getByRatedItem(ctx, job.RatedItemID)
			if err != nil {
				return &criticalError{err: err}
			}
			*job = *existing
			return nil
		}

		id, err := res.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("enqueue job id: %w", err)}
		}
		job.ID = id
		job.Status = domain.JobPending
		job.NextAttempt = now
		job.CreatedAt = now
		job.UpdatedAt = now
		return nil
	})
}

func (r *JobRepository) getByRatedItem(ctx context.Context, ratedItemID int64) (*domain.EmbeddingJob, error) {
	var sqlJob jobSQL
	err := r.db.GetContext(ctx, &sqlJob, "SELECT * FROM embedding_jobs WHERE rated_item_id = ?", ratedItemID)
	if err != nil {
		return nil, fmt.Errorf("get job by rated item: %w", err)
	}
	return toDomainJob(&sqlJob), nil
}

// GetJob retrieves a job by ID
func (r *JobRepository) GetJob(ctx context.Context, id int64) (*domain.EmbeddingJob, error) {
	var sqlJob jobSQL
	err := r.db.GetContext(ctx, &sqlJob, "SELECT * FROM embedding_jobs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return toDomainJob(&sqlJob), nil
}

// ClaimPending atomically claims up to limit due jobs for processing. Each
// claim is a conditional update on the pending status, so no job is handed
// to two workers. The attempt counter increments at claim time.
func (r *JobRepository) ClaimPending(ctx context.Context, limit int, now time.Time) ([]domain.EmbeddingJob, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM embedding_jobs
		WHERE status = ? AND next_attempt <= ?
		ORDER BY next_attempt, id
		LIMIT ?`,
		domain.JobPending, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("select due jobs: %w", err)
	}

	claimed := make([]domain.EmbeddingJob, 0, len(ids))
	for _, id := range ids {
		res, err := r.db.ExecContext(ctx, `
			UPDATE embedding_jobs
			SET status = ?, attempts = attempts + 1, locked_at = ?, updated_at = ?
			WHERE id = ? AND status = ?`,
			domain.JobProcessing, now.UTC(), now.UTC(), id, domain.JobPending)
		if err != nil {
			return nil, fmt.Errorf("claim job %d: %w", id, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("claim job %d rows: %w", id, err)
		}
		if rows == 0 {
			continue // another worker got there first
		}

		job, err := r.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		claimed = append(claimed, *job)
	}
	return claimed, nil
}

// Complete marks a processing job done and releases its lock
func (r *JobRepository) Complete(ctx context.Context, id int64) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `
			UPDATE embedding_jobs
			SET status = ?, locked_at = NULL, last_error = '', updated_at = ?
			WHERE id = ? AND status = ?`,
			domain.JobDone, time.Now().UTC(), id, domain.JobProcessing)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("complete job: %w", err)}
		}
		return nil
	})
}

// Fail records a processing failure. Jobs with attempts left go back to
// pending with exponential backoff; jobs out of attempts dead-letter with the
// final error preserved for inspection.
func (r *JobRepository) Fail(ctx context.Context, id int64, jobErr string, baseBackoff time.Duration) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		job, err := r.GetJob(ctx, id)
		if err != nil {
			return &criticalError{err: err}
		}
		if job.Status != domain.JobProcessing {
			return nil // lease reclaimed or already resolved elsewhere
		}

		now := time.Now().UTC()
		status := domain.JobPending
		nextAttempt := now.Add(backoffDelay(baseBackoff, job.Attempts))
		if job.Attempts >= job.MaxAttempts {
			status = domain.JobDeadLettered
			nextAttempt = now
		}

		res, err := r.db.ExecContext(ctx, `
			UPDATE embedding_jobs
			SET status = ?, next_attempt = ?, locked_at = NULL, last_error = ?, updated_at = ?
			WHERE id = ? AND status = ?`,
			status, nextAttempt, jobErr, now, id, domain.JobProcessing)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("fail job: %w", err)}
		}
		if rows, rowsErr := res.RowsAffected(); rowsErr == nil && rows == 0 {
			return nil // raced with reclaim, the other writer wins
		}
		return nil
	})
}

// DeadLetter forces a processing job straight to the dead letter state,
// bypassing remaining attempts. Used for permanent upstream rejections.
func (r *JobRepository) DeadLetter(ctx context.Context, id int64, jobErr string) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `
			UPDATE embedding_jobs
			SET status = ?, locked_at = NULL, last_error = ?, updated_at = ?
			WHERE id = ? AND status = ?`,
			domain.JobDeadLettered, jobErr, time.Now().UTC(), id, domain.JobProcessing)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("dead letter job: %w", err)}
		}
		return nil
	})
}

// ReclaimStuck returns processing jobs whose lease expired back to pending.
// Attempts are not reset, a crash mid-processing still consumed one.
func (r *JobRepository) ReclaimStuck(ctx context.Context, now time.Time, visibility time.Duration) (int64, error) {
	cutoff := now.UTC().Add(-visibility)
	res, err := r.db.ExecContext(ctx, `
		UPDATE embedding_jobs
		SET status = ?, locked_at = NULL, next_attempt = ?, updated_at = ?
		WHERE status = ? AND locked_at IS NOT NULL AND locked_at <= ?`,
		domain.JobPending, now.UTC(), now.UTC(), domain.JobProcessing, cutoff)
	if err != nil {
		return 0, fmt.Errorf("reclaim stuck jobs: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reclaim stuck rows: %w", err)
	}
	return rows, nil
}

// GetDeadLettered lists dead lettered jobs, most recently failed first
func (r *JobRepository) GetDeadLettered(ctx context.Context, limit int) ([]domain.EmbeddingJob, error) {
	var sqlJobs []jobSQL
	err := r.db.SelectContext(ctx, &sqlJobs, `
		SELECT * FROM embedding_jobs
		WHERE status = ?
		ORDER BY updated_at DESC, id DESC
		LIMIT ?`,
		domain.JobDeadLettered, limit)
	if err != nil {
		return nil, fmt.Errorf("get dead lettered jobs: %w", err)
	}

	jobs := make([]domain.EmbeddingJob, len(sqlJobs))
	for i := range sqlJobs {
		jobs[i] = *toDomainJob(&sqlJobs[i])
	}
	return jobs, nil
}

// Requeue puts a dead lettered job back in the queue with a fresh attempt
// budget. Jobs in any other state return domain.ErrNotFound.
func (r *JobRepository) Requeue(ctx context.Context, id int64) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		now := time.Now().UTC()
		res, err := r.db.ExecContext(ctx, `
			UPDATE embedding_jobs
			SET status = ?, attempts = 0, next_attempt = ?, locked_at = NULL, last_error = '', updated_at = ?
			WHERE id = ? AND status = ?`,
			domain.JobPending, now, now, id, domain.JobDeadLettered)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("requeue job: %w", err)}
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("requeue job rows: %w", err)}
		}
		if rows == 0 {
			return &criticalError{err: fmt.Errorf("dead lettered job %d: %w", id, domain.ErrNotFound)}
		}
		return nil
	})
}

// CountByStatus returns queue depth per status for the status endpoint
func (r *JobRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}{}
	err := r.db.SelectContext(ctx, &rows, "SELECT status, COUNT(*) AS cnt FROM embedding_jobs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// backoffDelay doubles per consumed attempt: base, 2x, 4x...
func backoffDelay(base time.Duration, attempts int) time.Duration {
	if base <= 0 {
		base = 30 * time.Second
	}
	delay := base
	for i := 1; i < attempts; i++ {
		delay *= 2
	}
	return delay
}

// toDomainJob converts jobSQL to domain.EmbeddingJob
func toDomainJob(sqlJob *jobSQL) *domain.EmbeddingJob {
	return &domain.EmbeddingJob{
		ID:          sqlJob.ID,
		UserID:      sqlJob.UserID,
		RatedItemID: sqlJob.RatedItemID,
		Text:        sqlJob.Text,
		Status:      domain.JobStatus(sqlJob.Status),
		Attempts:    sqlJob.Attempts,
		MaxAttempts: sqlJob.MaxAttempts,
		NextAttempt: sqlJob.NextAttempt,
		LockedAt:    sqlJob.LockedAt,
		LastError:   sqlJob.LastError,
		CreatedAt:   sqlJob.CreatedAt,
		UpdatedAt:   sqlJob.UpdatedAt,
	}
}
