package domain

import "time"

// JobStatus is the lifecycle state of an embedding job
type JobStatus string

// job states; done and dead_lettered are terminal
const (
	JobPending      JobStatus = "pending"
	JobProcessing   JobStatus = "processing"
	JobDone         JobStatus = "done"
	JobDeadLettered JobStatus = "dead_lettered"
)

// EmbeddingJob turns a rated item's review text into a vector asynchronously.
// A job is claimed by exactly one worker at a time; the lease (LockedAt) lets
// stuck processing jobs be reclaimed after a visibility timeout. Jobs that
// exhaust MaxAttempts are dead-lettered and never retried automatically.
type EmbeddingJob struct {
	ID          int64
	UserID      string
	RatedItemID int64
	Text        string
	Status      JobStatus
	Attempts    int
	MaxAttempts int
	NextAttempt time.Time
	LockedAt    *time.Time
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Terminal reports whether the job reached a state it never leaves on its own
func (j *EmbeddingJob) Terminal() bool {
	return j.Status == JobDone || j.Status == JobDeadLettered
}
