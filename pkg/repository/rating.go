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

// RatingRepository handles rated item database operations. Rated items are
// append-only: a re-rating of the same movie is a new row, and the profile
// recompute reads the latest rows first.
type RatingRepository struct {
	db *sqlx.DB
}

// ratedItemSQL represents a rated item for SQL operations
type ratedItemSQL struct {
	ID           int64     `db:"id"`
	UserID       string    `db:"user_id"`
	ItemID       int64     `db:"item_id"`
	Rating       float64   `db:"rating"`
	Review       string    `db:"review"`
	Embedding    vectorSQL `db:"embedding"`
	Incorporated bool      `db:"incorporated"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// CreateRatedItem inserts a new rating and fills in the generated ID
func (r *RatingRepository) CreateRatedItem(ctx context.Context, item *domain.RatedItem) error {
	if !domain.ValidRating(item.Rating) {
		return &domain.ValidationError{Field: "rating", Reason: "must be between 0 and 5 in half-star steps"}
	}

	sqlItem := &ratedItemSQL{
		UserID:    item.UserID,
		ItemID:    item.ItemID,
		Rating:    item.Rating,
		Review:    item.Review,
		Embedding: vectorSQL(item.Embedding),
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO rated_items (user_id, item_id, rating, review, embedding, incorporated, created_at)
		VALUES (:user_id, :item_id, :rating, :review, :embedding, 0, :created_at)
	`
	result, err := r.db.NamedExecContext(ctx, query, sqlItem)
	if err != nil {
		return fmt.Errorf("create rated item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	item.ID = id
	item.CreatedAt = sqlItem.CreatedAt
	return nil
}

// GetRatedItem retrieves a rated item by ID
func (r *RatingRepository) GetRatedItem(ctx context.Context, id int64) (*domain.RatedItem, error) {
	var sqlItem ratedItemSQL
	err := r.db.GetContext(ctx, &sqlItem, "SELECT * FROM rated_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rated item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rated item: %w", err)
	}
	return toDomainRatedItem(&sqlItem), nil
}

// GetRatedItems retrieves the user's ratings, newest first
func (r *RatingRepository) GetRatedItems(ctx context.Context, userID string, limit int) ([]domain.RatedItem, error) {
	query := `
		SELECT * FROM rated_items
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	var sqlItems []ratedItemSQL
	if err := r.db.SelectContext(ctx, &sqlItems, query, userID, limit); err != nil {
		return nil, fmt.Errorf("get rated items: %w", err)
	}

	items := make([]domain.RatedItem, len(sqlItems))
	for i := range sqlItems {
		items[i] = *toDomainRatedItem(&sqlItems[i])
	}
	return items, nil
}

// GetEmbeddedRatedItems retrieves the user's ratings that carry an embedding,
// newest first. These are the profile recompute inputs.
func (r *RatingRepository) GetEmbeddedRatedItems(ctx context.Context, userID string, limit int) ([]domain.RatedItem, error) {
	query := `
		SELECT * FROM rated_items
		WHERE user_id = ? AND embedding IS NOT NULL
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	var sqlItems []ratedItemSQL
	if err := r.db.SelectContext(ctx, &sqlItems, query, userID, limit); err != nil {
		return nil, fmt.Errorf("get embedded rated items: %w", err)
	}

	items := make([]domain.RatedItem, len(sqlItems))
	for i := range sqlItems {
		items[i] = *toDomainRatedItem(&sqlItems[i])
	}
	return items, nil
}

// AttachEmbedding stores the review embedding for a rated item. Write-once: a
// second attach for the same row is a no-op, so a redelivered job cannot
// overwrite the stored vector.
func (r *RatingRepository) AttachEmbedding(ctx context.Context, id int64, embedding []float64) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"UPDATE rated_items SET embedding = ? WHERE id = ? AND embedding IS NULL",
			vectorSQL(embedding), id)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("attach embedding: %w", err)}
		}
		return nil
	})
}

// MarkIncorporated flags a rating as folded into the taste profile
func (r *RatingRepository) MarkIncorporated(ctx context.Context, id int64) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE rated_items SET incorporated = 1 WHERE id = ?", id)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("mark incorporated: %w", err)}
		}
		return nil
	})
}

// SeedItemIDs returns the user's highest-rated movie IDs, used to seed the
// candidate pool. Ties resolve by recency.
func (r *RatingRepository) SeedItemIDs(ctx context.Context, userID string, minRating float64, limit int) ([]int64, error) {
	query := `
		SELECT item_id FROM rated_items
		WHERE user_id = ? AND rating >= ?
		GROUP BY item_id
		ORDER BY MAX(rating) DESC, MAX(created_at) DESC
		LIMIT ?
	`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, userID, minRating, limit); err != nil {
		return nil, fmt.Errorf("seed item ids: %w", err)
	}
	return ids, nil
}

// RatedItemIDs returns every movie ID the user has rated, for exclusion from
// the candidate pool
func (r *RatingRepository) RatedItemIDs(ctx context.Context, userID string) (map[int64]bool, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, "SELECT DISTINCT item_id FROM rated_items WHERE user_id = ?", userID); err != nil {
		return nil, fmt.Errorf("rated item ids: %w", err)
	}
	result := make(map[int64]bool, len(ids))
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// toDomainRatedItem converts ratedItemSQL to domain.RatedItem
func toDomainRatedItem(sqlItem *ratedItemSQL) *domain.RatedItem {
	return &domain.RatedItem{
		ID:           sqlItem.ID,
		UserID:       sqlItem.UserID,
		ItemID:       sqlItem.ItemID,
		Rating:       sqlItem.Rating,
		Review:       sqlItem.Review,
		Embedding:    sqlItem.Embedding,
		Incorporated: sqlItem.Incorporated,
		CreatedAt:    sqlItem.CreatedAt,
	}
}
