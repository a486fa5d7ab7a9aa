package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematch/cinematch/pkg/domain"
)

func TestRatingRepository_CreateRatedItem(t *testing.T) {
	repos := setupTestRepos(t)

	t.Run("valid rating", func(t *testing.T) {
		item := &domain.RatedItem{UserID: "u1", ItemID: 100, Rating: 4.5, Review: "great"}
		require.NoError(t, repos.Rating.CreateRatedItem(context.Background(), item))
		assert.NotZero(t, item.ID)
	})

	t.Run("re-rating appends a new row", func(t *testing.T) {
		item := &domain.RatedItem{UserID: "u1", ItemID: 100, Rating: 2.0}
		require.NoError(t, repos.Rating.CreateRatedItem(context.Background(), item))

		items, err := repos.Rating.GetRatedItems(context.Background(), "u1", 10)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.InDelta(t, 2.0, items[0].Rating, 0.0001) // newest first
	})

	t.Run("out of bounds rating rejected", func(t *testing.T) {
		item := &domain.RatedItem{UserID: "u1", ItemID: 101, Rating: 5.5}
		err := repos.Rating.CreateRatedItem(context.Background(), item)
		require.Error(t, err)

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("off-step rating rejected", func(t *testing.T) {
		item := &domain.RatedItem{UserID: "u1", ItemID: 101, Rating: 3.7}
		err := repos.Rating.CreateRatedItem(context.Background(), item)
		require.Error(t, err)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		_, err := repos.Rating.GetRatedItem(context.Background(), 99999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRatingRepository_AttachEmbedding(t *testing.T) {
	repos := setupTestRepos(t)

	item := &domain.RatedItem{UserID: "u1", ItemID: 200, Rating: 5.0, Review: "masterpiece"}
	require.NoError(t, repos.Rating.CreateRatedItem(context.Background(), item))

	t.Run("first attach stores the vector", func(t *testing.T) {
		require.NoError(t, repos.Rating.AttachEmbedding(context.Background(), item.ID, []float64{0.1, 0.2}))

		got, err := repos.Rating.GetRatedItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0.2}, got.Embedding)
	})

	t.Run("second attach is write-once no-op", func(t *testing.T) {
		require.NoError(t, repos.Rating.AttachEmbedding(context.Background(), item.ID, []float64{9, 9}))

		got, err := repos.Rating.GetRatedItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0.2}, got.Embedding)
	})

	t.Run("embedded items query skips bare ratings", func(t *testing.T) {
		bare := &domain.RatedItem{UserID: "u1", ItemID: 201, Rating: 3.0}
		require.NoError(t, repos.Rating.CreateRatedItem(context.Background(), bare))

		items, err := repos.Rating.GetEmbeddedRatedItems(context.Background(), "u1", 10)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, item.ID, items[0].ID)
	})

	t.Run("mark incorporated", func(t *testing.T) {
		require.NoError(t, repos.Rating.MarkIncorporated(context.Background(), item.ID))

		got, err := repos.Rating.GetRatedItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.True(t, got.Incorporated)
	})
}

func TestRatingRepository_SeedItemIDs(t *testing.T) {
	repos := setupTestRepos(t)

	ratings := []struct {
		itemID int64
		rating float64
	}{
		{300, 5.0},
		{301, 3.0},
		{302, 4.5},
		{303, 2.0},
	}
	for _, r := range ratings {
		item := &domain.RatedItem{UserID: "u1", ItemID: r.itemID, Rating: r.rating}
		require.NoError(t, repos.Rating.CreateRatedItem(context.Background(), item))
	}

	t.Run("highest rated first above threshold", func(t *testing.T) {
		ids, err := repos.Rating.SeedItemIDs(context.Background(), "u1", 4.0, 10)
		require.NoError(t, err)
		assert.Equal(t, []int64{300, 302}, ids)
	})

	t.Run("limit respected", func(t *testing.T) {
		ids, err := repos.Rating.SeedItemIDs(context.Background(), "u1", 2.0, 2)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
		assert.Equal(t, int64(300), ids[0])
	})

	t.Run("rated ids cover everything", func(t *testing.T) {
		ids, err := repos.Rating.RatedItemIDs(context.Background(), "u1")
		require.NoError(t, err)
		assert.Len(t, ids, 4)
		assert.True(t, ids[303])
	})

	t.Run("other user sees nothing", func(t *testing.T) {
		ids, err := repos.Rating.SeedItemIDs(context.Background(), "someone-else", 0, 10)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
