package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/cinematch/cinematch/pkg/domain"
)

// ItemRepository caches movie metadata and feature vectors supplied by the
// candidate source, so recency lookups and re-scoring do not re-fetch upstream
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents a cached movie for SQL operations
type itemSQL struct {
	ItemID      int64      `db:"item_id"`
	Title       string     `db:"title"`
	Vector      vectorSQL  `db:"vector"`
	Genres      stringsSQL `db:"genres"`
	Keywords    stringsSQL `db:"keywords"`
	ReleaseYear int        `db:"release_year"`
	Popularity  float64    `db:"popularity"`
	VoteAverage float64    `db:"vote_average"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// UpsertItems caches candidate metadata, replacing stale rows
func (r *ItemRepository) UpsertItems(ctx context.Context, items []domain.Candidate) error {
	if len(items) == 0 {
		return nil
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		now := time.Now().UTC()
		for _, item := range items {
			_, err := r.db.ExecContext(ctx, `
				INSERT INTO items (item_id, title, vector, genres, keywords, release_year, popularity, vote_average, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(item_id) DO UPDATE SET
					title = excluded.title,
					vector = excluded.vector,
					genres = excluded.genres,
					keywords = excluded.keywords,
					release_year = excluded.release_year,
					popularity = excluded.popularity,
					vote_average = excluded.vote_average,
					updated_at = excluded.updated_at`,
				item.ItemID, item.Title, nonNilVector(item.Vector), stringsSQL(item.Genres),
				stringsSQL(item.Keywords), item.ReleaseYear, item.Popularity, item.VoteAverage, now)
			if err != nil {
				if isLockError(err) {
					return err // repeater will retry this
				}
				return &criticalError{err: fmt.Errorf("upsert item %d: %w", item.ItemID, err)}
			}
		}
		return nil
	})
}

// GetItems retrieves cached movies by ID, skipping unknown IDs
func (r *ItemRepository) GetItems(ctx context.Context, ids []int64) ([]domain.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT * FROM items WHERE item_id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var sqlItems []itemSQL
	if err := r.db.SelectContext(ctx, &sqlItems, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	items := make([]domain.Candidate, len(sqlItems))
	for i := range sqlItems {
		items[i] = toDomainCandidate(&sqlItems[i])
	}
	return items, nil
}

// toDomainCandidate converts itemSQL to domain.Candidate
func toDomainCandidate(sqlItem *itemSQL) domain.Candidate {
	return domain.Candidate{
		ItemID:      sqlItem.ItemID,
		Title:       sqlItem.Title,
		Vector:      sqlItem.Vector,
		Genres:      sqlItem.Genres,
		Keywords:    sqlItem.Keywords,
		ReleaseYear: sqlItem.ReleaseYear,
		Popularity:  sqlItem.Popularity,
		VoteAverage: sqlItem.VoteAverage,
	}
}
