package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematch/cinematch/pkg/domain"
	"github.com/cinematch/cinematch/pkg/llm"
	"github.com/cinematch/cinematch/pkg/scheduler/mocks"
)

func TestNewScheduler(t *testing.T) {
	jobs := &mocks.JobQueueMock{}
	embedder := &mocks.EmbedderMock{}
	ratings := &mocks.RatingStoreMock{}
	profiles := &mocks.ProfileUpdaterMock{}
	recency := &mocks.RecencyStoreMock{}

	s := NewScheduler(jobs, embedder, ratings, profiles, recency, Config{
		PollInterval: 10 * time.Second,
		BatchSize:    3,
	})

	assert.Equal(t, 10*time.Second, s.pollInterval)
	assert.Equal(t, 3, s.batchSize)
	assert.Equal(t, 30*time.Second, s.backoffBase, "backoff base should default")
	assert.Equal(t, 5*time.Minute, s.visibility, "visibility timeout should default")
	assert.Equal(t, time.Hour, s.pruneInterval, "prune interval should default")
}

func TestNewScheduler_DefaultConfig(t *testing.T) {
	s := NewScheduler(&mocks.JobQueueMock{}, &mocks.EmbedderMock{}, &mocks.RatingStoreMock{},
		&mocks.ProfileUpdaterMock{}, &mocks.RecencyStoreMock{}, Config{})

	assert.Equal(t, 5*time.Second, s.pollInterval)
	assert.Equal(t, 10, s.batchSize)
	assert.Equal(t, 30*time.Second, s.backoffBase)
	assert.Equal(t, 5*time.Minute, s.visibility)
	assert.Equal(t, time.Hour, s.pruneInterval)
}

func TestScheduler_ProcessJob_Success(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		CompleteFunc: func(ctx context.Context, id int64) error { return nil },
	}
	embedder := &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, text string) ([]float64, error) {
			return []float64{0.1, 0.2}, nil
		},
	}
	ratings := &mocks.RatingStoreMock{
		AttachEmbeddingFunc: func(ctx context.Context, id int64, embedding []float64) error { return nil },
	}
	profiles := &mocks.ProfileUpdaterMock{
		ApplyRatingFunc: func(ctx context.Context, ratedItemID int64) error { return nil },
	}

	s := NewScheduler(jobs, embedder, ratings, profiles, nil, Config{})
	s.processJob(context.Background(), domain.EmbeddingJob{ID: 7, UserID: "u1", RatedItemID: 42, Text: "loved the pacing"})

	require.Len(t, embedder.EmbedCalls(), 1)
	assert.Equal(t, "loved the pacing", embedder.EmbedCalls()[0].Text)

	require.Len(t, ratings.AttachEmbeddingCalls(), 1)
	assert.Equal(t, int64(42), ratings.AttachEmbeddingCalls()[0].ID)
	assert.Equal(t, []float64{0.1, 0.2}, ratings.AttachEmbeddingCalls()[0].Embedding)

	require.Len(t, profiles.ApplyRatingCalls(), 1)
	assert.Equal(t, int64(42), profiles.ApplyRatingCalls()[0].RatedItemID)

	require.Len(t, jobs.CompleteCalls(), 1)
	assert.Equal(t, int64(7), jobs.CompleteCalls()[0].ID)
}

func TestScheduler_ProcessJob_RetryableError(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		FailFunc: func(ctx context.Context, id int64, jobErr string, baseBackoff time.Duration) error { return nil },
	}
	embedder := &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, text string) ([]float64, error) {
			return nil, errors.New("rate limited (429): slow down")
		},
	}
	ratings := &mocks.RatingStoreMock{}
	profiles := &mocks.ProfileUpdaterMock{}

	s := NewScheduler(jobs, embedder, ratings, profiles, nil, Config{BackoffBase: 45 * time.Second})
	s.processJob(context.Background(), domain.EmbeddingJob{ID: 7, RatedItemID: 42, Text: "great"})

	require.Len(t, jobs.FailCalls(), 1)
	assert.Equal(t, int64(7), jobs.FailCalls()[0].ID)
	assert.Contains(t, jobs.FailCalls()[0].JobErr, "rate limited")
	assert.Equal(t, 45*time.Second, jobs.FailCalls()[0].BaseBackoff)

	assert.Empty(t, jobs.DeadLetterCalls(), "transient failures should not dead-letter")
	assert.Empty(t, ratings.AttachEmbeddingCalls())
	assert.Empty(t, profiles.ApplyRatingCalls())
}

func TestScheduler_ProcessJob_PermanentError(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		DeadLetterFunc: func(ctx context.Context, id int64, jobErr string) error { return nil },
	}
	embedder := &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, text string) ([]float64, error) {
			return nil, &llm.PermanentError{Reason: "request rejected with status 400"}
		},
	}
	ratings := &mocks.RatingStoreMock{}
	profiles := &mocks.ProfileUpdaterMock{}

	s := NewScheduler(jobs, embedder, ratings, profiles, nil, Config{})
	s.processJob(context.Background(), domain.EmbeddingJob{ID: 9, RatedItemID: 42, Text: "x"})

	require.Len(t, jobs.DeadLetterCalls(), 1)
	assert.Equal(t, int64(9), jobs.DeadLetterCalls()[0].ID)
	assert.Contains(t, jobs.DeadLetterCalls()[0].JobErr, "status 400")

	assert.Empty(t, jobs.FailCalls(), "permanent rejections skip the retry budget")
	assert.Empty(t, ratings.AttachEmbeddingCalls())
}

func TestScheduler_ProcessJob_AttachFailure(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		FailFunc: func(ctx context.Context, id int64, jobErr string, baseBackoff time.Duration) error { return nil },
	}
	embedder := &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, text string) ([]float64, error) {
			return []float64{0.5}, nil
		},
	}
	ratings := &mocks.RatingStoreMock{
		AttachEmbeddingFunc: func(ctx context.Context, id int64, embedding []float64) error {
			return errors.New("database is locked")
		},
	}
	profiles := &mocks.ProfileUpdaterMock{}

	s := NewScheduler(jobs, embedder, ratings, profiles, nil, Config{})
	s.processJob(context.Background(), domain.EmbeddingJob{ID: 3, RatedItemID: 42, Text: "x"})

	require.Len(t, jobs.FailCalls(), 1)
	assert.Contains(t, jobs.FailCalls()[0].JobErr, "locked")
	assert.Empty(t, profiles.ApplyRatingCalls(), "profile update should not run without a stored embedding")
	assert.Empty(t, jobs.CompleteCalls())
}

func TestScheduler_ProcessJob_ApplyFailure(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		FailFunc: func(ctx context.Context, id int64, jobErr string, baseBackoff time.Duration) error { return nil },
	}
	embedder := &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, text string) ([]float64, error) {
			return []float64{0.5}, nil
		},
	}
	ratings := &mocks.RatingStoreMock{
		AttachEmbeddingFunc: func(ctx context.Context, id int64, embedding []float64) error { return nil },
	}
	profiles := &mocks.ProfileUpdaterMock{
		ApplyRatingFunc: func(ctx context.Context, ratedItemID int64) error {
			return errors.New("version conflict")
		},
	}

	s := NewScheduler(jobs, embedder, ratings, profiles, nil, Config{})
	s.processJob(context.Background(), domain.EmbeddingJob{ID: 3, RatedItemID: 42, Text: "x"})

	require.Len(t, jobs.FailCalls(), 1)
	assert.Empty(t, jobs.CompleteCalls(), "job must stay incomplete when profile update fails")
}

func TestScheduler_ProcessBatch(t *testing.T) {
	t.Run("claim error stops the batch", func(t *testing.T) {
		jobs := &mocks.JobQueueMock{
			ClaimPendingFunc: func(ctx context.Context, limit int, now time.Time) ([]domain.EmbeddingJob, error) {
				return nil, errors.New("db down")
			},
		}
		embedder := &mocks.EmbedderMock{}

		s := NewScheduler(jobs, embedder, &mocks.RatingStoreMock{}, &mocks.ProfileUpdaterMock{}, nil, Config{})
		s.processBatch(context.Background())

		assert.Empty(t, embedder.EmbedCalls())
	})

	t.Run("empty queue is quiet", func(t *testing.T) {
		jobs := &mocks.JobQueueMock{
			ClaimPendingFunc: func(ctx context.Context, limit int, now time.Time) ([]domain.EmbeddingJob, error) {
				return nil, nil
			},
		}
		embedder := &mocks.EmbedderMock{}

		s := NewScheduler(jobs, embedder, &mocks.RatingStoreMock{}, &mocks.ProfileUpdaterMock{}, nil, Config{})
		s.processBatch(context.Background())

		assert.Empty(t, embedder.EmbedCalls())
	})

	t.Run("claimed jobs are processed in order", func(t *testing.T) {
		jobs := &mocks.JobQueueMock{
			ClaimPendingFunc: func(ctx context.Context, limit int, now time.Time) ([]domain.EmbeddingJob, error) {
				assert.Equal(t, 4, limit)
				return []domain.EmbeddingJob{
					{ID: 1, RatedItemID: 10, Text: "first"},
					{ID: 2, RatedItemID: 11, Text: "second"},
				}, nil
			},
			CompleteFunc: func(ctx context.Context, id int64) error { return nil },
		}
		embedder := &mocks.EmbedderMock{
			EmbedFunc: func(ctx context.Context, text string) ([]float64, error) {
				return []float64{1}, nil
			},
		}
		ratings := &mocks.RatingStoreMock{
			AttachEmbeddingFunc: func(ctx context.Context, id int64, embedding []float64) error { return nil },
		}
		profiles := &mocks.ProfileUpdaterMock{
			ApplyRatingFunc: func(ctx context.Context, ratedItemID int64) error { return nil },
		}

		s := NewScheduler(jobs, embedder, ratings, profiles, nil, Config{BatchSize: 4})
		s.processBatch(context.Background())

		require.Len(t, embedder.EmbedCalls(), 2)
		assert.Equal(t, "first", embedder.EmbedCalls()[0].Text)
		assert.Equal(t, "second", embedder.EmbedCalls()[1].Text)
		assert.Len(t, jobs.CompleteCalls(), 2)
	})
}

func TestScheduler_StartStop(t *testing.T) {
	var claims int32
	jobs := &mocks.JobQueueMock{
		ClaimPendingFunc: func(ctx context.Context, limit int, now time.Time) ([]domain.EmbeddingJob, error) {
			atomic.AddInt32(&claims, 1)
			return nil, nil
		},
		ReclaimStuckFunc: func(ctx context.Context, now time.Time, visibility time.Duration) (int64, error) {
			return 0, nil
		},
	}
	recency := &mocks.RecencyStoreMock{
		PruneFunc: func(ctx context.Context) (int64, error) { return 2, nil },
	}

	s := NewScheduler(jobs, &mocks.EmbedderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileUpdaterMock{}, recency, Config{
		PollInterval:      10 * time.Millisecond,
		VisibilityTimeout: 15 * time.Millisecond,
		PruneInterval:     15 * time.Millisecond,
	})
	s.Start(context.Background())

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&claims) >= 3
	}, time.Second, 5*time.Millisecond, "poll loop should keep claiming")
	require.Eventually(t, func() bool {
		return len(jobs.ReclaimStuckCalls()) >= 1
	}, time.Second, 5*time.Millisecond, "reclaim loop should run")
	require.Eventually(t, func() bool {
		return len(recency.PruneCalls()) >= 1
	}, time.Second, 5*time.Millisecond, "prune loop should run")

	s.Stop()

	after := atomic.LoadInt32(&claims)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&claims), "no claims after stop")
}

func TestScheduler_StartStop_NoRecencyStore(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		ClaimPendingFunc: func(ctx context.Context, limit int, now time.Time) ([]domain.EmbeddingJob, error) {
			return nil, nil
		},
		ReclaimStuckFunc: func(ctx context.Context, now time.Time, visibility time.Duration) (int64, error) {
			return 0, nil
		},
	}

	s := NewScheduler(jobs, &mocks.EmbedderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileUpdaterMock{}, nil, Config{
		PollInterval: 10 * time.Millisecond,
	})
	s.Start(context.Background())
	time.Sleep(25 * time.Millisecond)
	s.Stop()

	assert.NotEmpty(t, jobs.ClaimPendingCalls())
}
