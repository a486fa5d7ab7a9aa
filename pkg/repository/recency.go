package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/cinematch/cinematch/pkg/domain"
)

// RecencyRepository tracks which movies were served to which user, so the
// engine can suppress repeats inside the cooldown window
type RecencyRepository struct {
	db     *sqlx.DB
	window time.Duration
}

// NewRecencyRepository creates a new recency repository. Records older than
// the window stop suppressing and become prunable.
func NewRecencyRepository(db *sqlx.DB, opts ...RecencyOption) *RecencyRepository {
	r := &RecencyRepository{db: db, window: 60 * 24 * time.Hour}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecencyOption configures the recency repository
type RecencyOption func(*RecencyRepository)

// WithRecencyWindow overrides the suppression window
func WithRecencyWindow(window time.Duration) RecencyOption {
	return func(r *RecencyRepository) {
		if window > 0 {
			r.window = window
		}
	}
}

// Filter drops candidates served to the user inside the window
func (r *RecencyRepository) Filter(ctx context.Context, userID string, candidates []domain.Candidate) ([]domain.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	cutoff := time.Now().UTC().Add(-r.window)
	var ids []int64
	err := r.db.SelectContext(ctx, &ids,
		"SELECT item_id FROM recency_records WHERE user_id = ? AND served_at > ?", userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("get recent ids: %w", err)
	}

	recent := make(map[int64]bool, len(ids))
	for _, id := range ids {
		recent[id] = true
	}

	kept := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !recent[c.ItemID] {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// Record marks the items as served at the given time. Serving an item again
// refreshes its timestamp, restarting the cooldown.
func (r *RecencyRepository) Record(ctx context.Context, userID string, itemIDs []int64, now time.Time) error {
	if len(itemIDs) == 0 {
		return nil
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		for _, id := range itemIDs {
			_, err := r.db.ExecContext(ctx, `
				INSERT INTO recency_records (user_id, item_id, served_at)
				VALUES (?, ?, ?)
				ON CONFLICT(user_id, item_id) DO UPDATE SET served_at = excluded.served_at`,
				userID, id, now.UTC())
			if err != nil {
				if isLockError(err) {
					return err // repeater will retry this
				}
				return &criticalError{err: fmt.Errorf("record served item %d: %w", id, err)}
			}
		}
		return nil
	})
}

// RecentItems returns cached metadata for the user's most recently served
// movies, newest first. Items missing from the cache are skipped.
func (r *RecencyRepository) RecentItems(ctx context.Context, userID string, limit int) ([]domain.Candidate, error) {
	cutoff := time.Now().UTC().Add(-r.window)
	query := `
		SELECT i.* FROM recency_records r
		JOIN items i ON i.item_id = r.item_id
		WHERE r.user_id = ? AND r.served_at > ?
		ORDER BY r.served_at DESC
		LIMIT ?
	`
	var sqlItems []itemSQL
	if err := r.db.SelectContext(ctx, &sqlItems, query, userID, cutoff, limit); err != nil {
		return nil, fmt.Errorf("get recent items: %w", err)
	}

	items := make([]domain.Candidate, len(sqlItems))
	for i := range sqlItems {
		items[i] = toDomainCandidate(&sqlItems[i])
	}
	return items, nil
}

// Prune deletes records that aged out of the window, returns rows removed
func (r *RecencyRepository) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-r.window)
	res, err := r.db.ExecContext(ctx, "DELETE FROM recency_records WHERE served_at <= ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune recency records: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune recency rows: %w", err)
	}
	return rows, nil
}
