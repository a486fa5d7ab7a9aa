package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
)

// RateLimitRepository gates actions per (user, action) pair. Check and touch
// happen in one immediate transaction, so concurrent requests for the same
// user serialize and exactly one wins the slot.
type RateLimitRepository struct {
	db *sqlx.DB
}

// NewRateLimitRepository creates a new rate limit repository
func NewRateLimitRepository(db *sqlx.DB) *RateLimitRepository {
	return &RateLimitRepository{db: db}
}

// CheckAndTouch reports whether the action is allowed for the user and, if it
// is, records the attempt in the same transaction. Denials do not move the
// window: a rejected request does not extend the wait.
func (r *RateLimitRepository) CheckAndTouch(ctx context.Context, userID, action string, minInterval time.Duration) (allowed bool, retryAfter time.Duration, err error) {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err = retrier.Do(ctx, func() error {
		var doErr error
		allowed, retryAfter, doErr = r.checkAndTouchOnce(ctx, userID, action, minInterval)
		if doErr != nil {
			if isLockError(doErr) {
				return doErr // repeater will retry this
			}
			return &criticalError{err: doErr}
		}
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit check: %w", err)
	}
	return allowed, retryAfter, nil
}

func (r *RateLimitRepository) checkAndTouchOnce(ctx context.Context, userID, action string, minInterval time.Duration) (bool, time.Duration, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	now := time.Now().UTC()

	var lastTouch time.Time
	err = tx.GetContext(ctx, &lastTouch,
		"SELECT last_touch FROM rate_limits WHERE user_id = ? AND action = ?", userID, action)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, 0, fmt.Errorf("get last touch: %w", err)
	}

	if err == nil {
		elapsed := now.Sub(lastTouch)
		if elapsed < minInterval {
			return false, minInterval - elapsed, nil
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rate_limits (user_id, action, last_touch)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, action) DO UPDATE SET last_touch = excluded.last_touch`,
		userID, action, now)
	if err != nil {
		return false, 0, fmt.Errorf("touch rate limit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit rate limit: %w", err)
	}
	return true, 0, nil
}
