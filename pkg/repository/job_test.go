package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematch/cinematch/pkg/domain"
)

func enqueueTestJob(t *testing.T, repos *Repositories, userID string, ratedItemID int64) *domain.EmbeddingJob {
	t.Helper()
	job := &domain.EmbeddingJob{UserID: userID, RatedItemID: ratedItemID, Text: "some review text"}
	require.NoError(t, repos.Job.Enqueue(context.Background(), job))
	return job
}

func TestJobRepository_Enqueue(t *testing.T) {
	repos := setupTestRepos(t)

	t.Run("new job starts pending", func(t *testing.T) {
		job := enqueueTestJob(t, repos, "u1", 10)
		assert.NotZero(t, job.ID)
		assert.Equal(t, domain.JobPending, job.Status)
		assert.Equal(t, 0, job.Attempts)
		assert.Equal(t, 3, job.MaxAttempts)
		assert.False(t, job.Terminal())
	})

	t.Run("duplicate delivery adopts the stored job", func(t *testing.T) {
		first := enqueueTestJob(t, repos, "u1", 11)
		second := enqueueTestJob(t, repos, "u1", 11)
		assert.Equal(t, first.ID, second.ID)

		var count int
		require.NoError(t, repos.DB.Get(&count, "SELECT COUNT(*) FROM embedding_jobs WHERE rated_item_id = 11"))
		assert.Equal(t, 1, count)
	})

	t.Run("missing job is not found", func(t *testing.T) {
		_, err := repos.Job.GetJob(context.Background(), 99999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestJobRepository_ClaimPending(t *testing.T) {
	repos := setupTestRepos(t)

	j1 := enqueueTestJob(t, repos, "u1", 20)
	j2 := enqueueTestJob(t, repos, "u1", 21)
	j3 := enqueueTestJob(t, repos, "u2", 22)

	t.Run("claims up to limit in due order", func(t *testing.T) {
		claimed, err := repos.Job.ClaimPending(context.Background(), 2, time.Now())
		require.NoError(t, err)
		require.Len(t, claimed, 2)
		assert.Equal(t, j1.ID, claimed[0].ID)
		assert.Equal(t, j2.ID, claimed[1].ID)
		for _, job := range claimed {
			assert.Equal(t, domain.JobProcessing, job.Status)
			assert.Equal(t, 1, job.Attempts)
			assert.NotNil(t, job.LockedAt)
		}
	})

	t.Run("claimed jobs are not claimable again", func(t *testing.T) {
		claimed, err := repos.Job.ClaimPending(context.Background(), 10, time.Now())
		require.NoError(t, err)
		require.Len(t, claimed, 1)
		assert.Equal(t, j3.ID, claimed[0].ID)
	})

	t.Run("future next_attempt not due", func(t *testing.T) {
		job := enqueueTestJob(t, repos, "u3", 23)
		_, err := repos.DB.Exec("UPDATE embedding_jobs SET next_attempt = ? WHERE id = ?",
			time.Now().UTC().Add(time.Hour), job.ID)
		require.NoError(t, err)

		claimed, err := repos.Job.ClaimPending(context.Background(), 10, time.Now())
		require.NoError(t, err)
		assert.Empty(t, claimed)
	})
}

func TestJobRepository_CompleteAndFail(t *testing.T) {
	repos := setupTestRepos(t)

	t.Run("complete marks done and clears lock", func(t *testing.T) {
		job := enqueueTestJob(t, repos, "u1", 30)
		claimed, err := repos.Job.ClaimPending(context.Background(), 1, time.Now())
		require.NoError(t, err)
		require.Len(t, claimed, 1)

		require.NoError(t, repos.Job.Complete(context.Background(), job.ID))

		got, err := repos.Job.GetJob(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobDone, got.Status)
		assert.Nil(t, got.LockedAt)
		assert.True(t, got.Terminal())
	})

	t.Run("fail with attempts left goes back to pending with backoff", func(t *testing.T) {
		job := enqueueTestJob(t, repos, "u1", 31)
		_, err := repos.Job.ClaimPending(context.Background(), 1, time.Now())
		require.NoError(t, err)

		before := time.Now().UTC()
		require.NoError(t, repos.Job.Fail(context.Background(), job.ID, "embed: rate limited", 30*time.Second))

		got, err := repos.Job.GetJob(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobPending, got.Status)
		assert.Equal(t, "embed: rate limited", got.LastError)
		assert.Nil(t, got.LockedAt)
		assert.True(t, got.NextAttempt.After(before.Add(29*time.Second)), "backoff should delay the next attempt")
	})

	t.Run("exhausted attempts dead letter the job", func(t *testing.T) {
		job := enqueueTestJob(t, repos, "u1", 32)

		for i := 0; i < 3; i++ {
			// make the job due regardless of accumulated backoff
			_, err := repos.DB.Exec("UPDATE embedding_jobs SET next_attempt = ? WHERE id = ?", time.Now().UTC(), job.ID)
			require.NoError(t, err)

			claimed, err := repos.Job.ClaimPending(context.Background(), 10, time.Now())
			require.NoError(t, err)
			require.Len(t, claimed, 1, "attempt %d should claim the job", i+1)
			require.NoError(t, repos.Job.Fail(context.Background(), job.ID, "embed: boom", time.Millisecond))
		}

		got, err := repos.Job.GetJob(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobDeadLettered, got.Status)
		assert.Equal(t, 3, got.Attempts)
		assert.Equal(t, "embed: boom", got.LastError)
		assert.True(t, got.Terminal())
	})

	t.Run("fail on non-processing job is a no-op", func(t *testing.T) {
		job := enqueueTestJob(t, repos, "u1", 33)
		require.NoError(t, repos.Job.Fail(context.Background(), job.ID, "ignored", time.Second))

		got, err := repos.Job.GetJob(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobPending, got.Status)
		assert.Empty(t, got.LastError)
	})

	t.Run("permanent rejection dead letters immediately", func(t *testing.T) {
		job := enqueueTestJob(t, repos, "u1", 34)
		_, err := repos.Job.ClaimPending(context.Background(), 10, time.Now())
		require.NoError(t, err)

		require.NoError(t, repos.Job.DeadLetter(context.Background(), job.ID, "embed: input too long"))

		got, err := repos.Job.GetJob(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobDeadLettered, got.Status)
		assert.Equal(t, 1, got.Attempts)
	})
}

func TestJobRepository_ReclaimStuck(t *testing.T) {
	repos := setupTestRepos(t)

	job := enqueueTestJob(t, repos, "u1", 40)
	claimTime := time.Now().Add(-10 * time.Minute)
	claimed, err := repos.Job.ClaimPending(context.Background(), 1, claimTime)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	t.Run("fresh lease not reclaimed", func(t *testing.T) {
		reclaimed, err := repos.Job.ReclaimStuck(context.Background(), time.Now(), time.Hour)
		require.NoError(t, err)
		assert.Zero(t, reclaimed)
	})

	t.Run("expired lease goes back to pending", func(t *testing.T) {
		reclaimed, err := repos.Job.ReclaimStuck(context.Background(), time.Now(), 5*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), reclaimed)

		got, err := repos.Job.GetJob(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobPending, got.Status)
		assert.Nil(t, got.LockedAt)
		assert.Equal(t, 1, got.Attempts, "crash mid-processing still consumed an attempt")
	})

	t.Run("reclaimed job claimable again", func(t *testing.T) {
		claimed, err := repos.Job.ClaimPending(context.Background(), 1, time.Now())
		require.NoError(t, err)
		require.Len(t, claimed, 1)
		assert.Equal(t, 2, claimed[0].Attempts)
	})
}

func TestJobRepository_DeadLetterQueue(t *testing.T) {
	repos := setupTestRepos(t)

	makeDeadLettered := func(ratedItemID int64) *domain.EmbeddingJob {
		job := enqueueTestJob(t, repos, "u1", ratedItemID)
		_, err := repos.DB.Exec("UPDATE embedding_jobs SET status = ?, last_error = 'boom' WHERE id = ?",
			domain.JobDeadLettered, job.ID)
		require.NoError(t, err)
		return job
	}

	j1 := makeDeadLettered(50)
	makeDeadLettered(51)

	t.Run("list dead lettered", func(t *testing.T) {
		jobs, err := repos.Job.GetDeadLettered(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, "boom", jobs[0].LastError)
	})

	t.Run("requeue resets the attempt budget", func(t *testing.T) {
		require.NoError(t, repos.Job.Requeue(context.Background(), j1.ID))

		got, err := repos.Job.GetJob(context.Background(), j1.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobPending, got.Status)
		assert.Equal(t, 0, got.Attempts)
		assert.Empty(t, got.LastError)
	})

	t.Run("requeue of non dead lettered fails", func(t *testing.T) {
		err := repos.Job.Requeue(context.Background(), j1.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("counts by status", func(t *testing.T) {
		counts, err := repos.Job.CountByStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, counts[string(domain.JobPending)])
		assert.Equal(t, 1, counts[string(domain.JobDeadLettered)])
	})
}

func TestJobRepository_ConcurrentClaims(t *testing.T) {
	repos := setupFileRepos(t)
	job := enqueueTestJob(t, repos, "u1", 60)

	const workers = 12
	var claimedCount int32
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := repos.Job.ClaimPending(context.Background(), 1, time.Now())
			require.NoError(t, err)
			atomic.AddInt32(&claimedCount, int32(len(claimed)))
		}()
	}
	wg.Wait()

	// the claim is a conditional update on pending, only one worker can win
	assert.Equal(t, int32(1), atomic.LoadInt32(&claimedCount))

	got, err := repos.Job.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobProcessing, got.Status)
	assert.Equal(t, 1, got.Attempts)
}
