package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/cinematch/cinematch/pkg/domain"
	"github.com/cinematch/cinematch/pkg/llm"
)

//go:generate moq -out mocks/job_queue.go -pkg mocks -skip-ensure -fmt goimports . JobQueue
//go:generate moq -out mocks/embedder.go -pkg mocks -skip-ensure -fmt goimports . Embedder
//go:generate moq -out mocks/rating_store.go -pkg mocks -skip-ensure -fmt goimports . RatingStore
//go:generate moq -out mocks/profile_updater.go -pkg mocks -skip-ensure -fmt goimports . ProfileUpdater
//go:generate moq -out mocks/recency_store.go -pkg mocks -skip-ensure -fmt goimports . RecencyStore

// Scheduler runs the background embedding pipeline: it claims queued review
// jobs, embeds them, folds the result into the reviewer's taste profile and
// keeps the queue healthy by reclaiming stuck jobs and pruning aged
// recency records.
type Scheduler struct {
	jobs     JobQueue
	embedder Embedder
	ratings  RatingStore
	profiles ProfileUpdater
	recency  RecencyStore

	pollInterval  time.Duration
	batchSize     int
	backoffBase   time.Duration
	visibility    time.Duration
	pruneInterval time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// JobQueue interface for embedding job operations
type JobQueue interface {
	ClaimPending(ctx context.Context, limit int, now time.Time) ([]domain.EmbeddingJob, error)
	Complete(ctx context.Context, id int64) error
	Fail(ctx context.Context, id int64, jobErr string, baseBackoff time.Duration) error
	DeadLetter(ctx context.Context, id int64, jobErr string) error
	ReclaimStuck(ctx context.Context, now time.Time, visibility time.Duration) (int64, error)
}

// Embedder interface for turning review text into vectors
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// RatingStore interface for attaching embeddings to rated items
type RatingStore interface {
	AttachEmbedding(ctx context.Context, id int64, embedding []float64) error
}

// ProfileUpdater interface for folding embedded ratings into taste profiles
type ProfileUpdater interface {
	ApplyRating(ctx context.Context, ratedItemID int64) error
}

// RecencyStore interface for recency record maintenance
type RecencyStore interface {
	Prune(ctx context.Context) (int64, error)
}

// Config holds scheduler configuration
type Config struct {
	PollInterval      time.Duration
	BatchSize         int
	BackoffBase       time.Duration
	VisibilityTimeout time.Duration
	PruneInterval     time.Duration
}

// NewScheduler creates a new scheduler instance
func NewScheduler(jobs JobQueue, embedder Embedder, ratings RatingStore, profiles ProfileUpdater, recency RecencyStore, cfg Config) *Scheduler {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 10
	}
	if cfg.BackoffBase == 0 {
		cfg.BackoffBase = 30 * time.Second
	}
	if cfg.VisibilityTimeout == 0 {
		cfg.VisibilityTimeout = 5 * time.Minute
	}
	if cfg.PruneInterval == 0 {
		cfg.PruneInterval = time.Hour
	}

	return &Scheduler{
		jobs:          jobs,
		embedder:      embedder,
		ratings:       ratings,
		profiles:      profiles,
		recency:       recency,
		pollInterval:  cfg.PollInterval,
		batchSize:     cfg.BatchSize,
		backoffBase:   cfg.BackoffBase,
		visibility:    cfg.VisibilityTimeout,
		pruneInterval: cfg.PruneInterval,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	// start embedding job worker
	s.wg.Add(1)
	go s.jobWorker(ctx)

	// start stuck job reclaim worker
	s.wg.Add(1)
	go s.reclaimWorker(ctx)

	// start recency prune worker if a recency store is provided
	if s.recency != nil {
		s.wg.Add(1)
		go s.pruneWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with poll interval %v, batch size %d, visibility timeout %v",
		s.pollInterval, s.batchSize, s.visibility)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// jobWorker periodically claims and processes pending embedding jobs
func (s *Scheduler) jobWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	// run immediately on start
	s.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.processBatch(ctx)
		}
	}
}

// processBatch claims up to batchSize due jobs and processes them one by one.
// Jobs are handled sequentially to keep profile updates from racing each other
// inside a single instance; cross-instance races are resolved by versioned
// profile writes.
func (s *Scheduler) processBatch(ctx context.Context) {
	jobs, err := s.jobs.ClaimPending(ctx, s.batchSize, time.Now())
	if err != nil {
		lgr.Printf("[ERROR] failed to claim pending jobs: %v", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	lgr.Printf("[DEBUG] processing %d embedding jobs", len(jobs))
	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		s.processJob(ctx, job)
	}
}

// processJob embeds a single claimed job and records the outcome. Permanent
// embedding rejections go straight to the dead-letter state, everything else
// gets a backoff retry until the attempt budget runs out.
func (s *Scheduler) processJob(ctx context.Context, job domain.EmbeddingJob) {
	vector, err := s.embedder.Embed(ctx, job.Text)
	if err != nil {
		if !llm.Retryable(err) {
			lgr.Printf("[WARN] embedding rejected for job %d (rated item %d): %v", job.ID, job.RatedItemID, err)
			if dlErr := s.jobs.DeadLetter(ctx, job.ID, err.Error()); dlErr != nil {
				lgr.Printf("[ERROR] failed to dead-letter job %d: %v", job.ID, dlErr)
			}
			return
		}
		lgr.Printf("[WARN] embedding failed for job %d (attempt %d/%d): %v", job.ID, job.Attempts, job.MaxAttempts, err)
		if failErr := s.jobs.Fail(ctx, job.ID, err.Error(), s.backoffBase); failErr != nil {
			lgr.Printf("[ERROR] failed to record failure for job %d: %v", job.ID, failErr)
		}
		return
	}

	if err := s.ratings.AttachEmbedding(ctx, job.RatedItemID, vector); err != nil {
		lgr.Printf("[ERROR] failed to attach embedding for rated item %d: %v", job.RatedItemID, err)
		if failErr := s.jobs.Fail(ctx, job.ID, err.Error(), s.backoffBase); failErr != nil {
			lgr.Printf("[ERROR] failed to record failure for job %d: %v", job.ID, failErr)
		}
		return
	}

	if err := s.profiles.ApplyRating(ctx, job.RatedItemID); err != nil {
		lgr.Printf("[ERROR] failed to fold rated item %d into profile for %s: %v", job.RatedItemID, job.UserID, err)
		if failErr := s.jobs.Fail(ctx, job.ID, err.Error(), s.backoffBase); failErr != nil {
			lgr.Printf("[ERROR] failed to record failure for job %d: %v", job.ID, failErr)
		}
		return
	}

	if err := s.jobs.Complete(ctx, job.ID); err != nil {
		lgr.Printf("[ERROR] failed to complete job %d: %v", job.ID, err)
		return
	}
	lgr.Printf("[DEBUG] embedded rated item %d for user %s", job.RatedItemID, job.UserID)
}

// reclaimWorker periodically returns jobs with expired leases to the queue
func (s *Scheduler) reclaimWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.visibility)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reclaimed, err := s.jobs.ReclaimStuck(ctx, time.Now(), s.visibility)
			if err != nil {
				lgr.Printf("[ERROR] failed to reclaim stuck jobs: %v", err)
				continue
			}
			if reclaimed > 0 {
				lgr.Printf("[INFO] reclaimed %d stuck jobs", reclaimed)
			}
		}
	}
}

// pruneWorker periodically deletes recency records older than the cooldown window
func (s *Scheduler) pruneWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := s.recency.Prune(ctx)
			if err != nil {
				lgr.Printf("[ERROR] failed to prune recency records: %v", err)
				continue
			}
			if pruned > 0 {
				lgr.Printf("[DEBUG] pruned %d aged recency records", pruned)
			}
		}
	}
}
