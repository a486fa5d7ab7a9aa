package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/cinematch/cinematch/pkg/domain"
)

// ProfileRepository handles taste profile database operations
type ProfileRepository struct {
	db *sqlx.DB
}

// profileSQL represents a taste profile for SQL operations
type profileSQL struct {
	UserID        string    `db:"user_id"`
	LikeVector    vectorSQL `db:"like_vector"`
	DislikeVector vectorSQL `db:"dislike_vector"`
	AvoidPatterns avoidsSQL `db:"avoid_patterns"`
	Version       int64     `db:"version"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// avoidsSQL is a JSON array of avoid patterns for SQL operations
type avoidsSQL []domain.AvoidPattern

// Value implements driver.Valuer for database storage
func (a avoidsSQL) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]domain.AvoidPattern(a))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (a *avoidsSQL) Scan(value interface{}) error {
	if value == nil {
		*a = avoidsSQL{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*a = avoidsSQL{}
		return nil
	}

	return json.Unmarshal(data, (*[]domain.AvoidPattern)(a))
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// nonNilVector keeps profile vector columns NOT NULL friendly
func nonNilVector(v []float64) vectorSQL {
	if v == nil {
		return vectorSQL{}
	}
	return vectorSQL(v)
}

// GetProfile retrieves a user's taste profile. A user without a stored row
// gets a zero-value cold-start profile with version 0, never an error.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.TasteProfile, error) {
	var sqlProfile profileSQL
	err := r.db.GetContext(ctx, &sqlProfile, "SELECT * FROM taste_profiles WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.TasteProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return toDomainProfile(&sqlProfile), nil
}

// UpdateVectors persists recomputed taste vectors with optimistic locking.
// The write succeeds only if the stored version still equals expectedVersion;
// a concurrent update in between yields domain.ConflictError.
func (r *ProfileRepository) UpdateVectors(ctx context.Context, userID string, like, dislike []float64, expectedVersion int64) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		now := time.Now().UTC()

		if expectedVersion == 0 {
			// first write for this user, version 0 means no stored row yet
			res, err := r.db.ExecContext(ctx, `
				INSERT INTO taste_profiles (user_id, like_vector, dislike_vector, avoid_patterns, version, updated_at)
				VALUES (?, ?, ?, '[]', 1, ?)
				ON CONFLICT(user_id) DO NOTHING`,
				userID, nonNilVector(like), nonNilVector(dislike), now)
			if err != nil {
				if isLockError(err) {
					return err // repeater will retry this
				}
				return &criticalError{err: fmt.Errorf("insert profile: %w", err)}
			}
			rows, err := res.RowsAffected()
			if err != nil {
				return &criticalError{err: fmt.Errorf("insert profile rows: %w", err)}
			}
			if rows == 0 {
				return &criticalError{err: &domain.ConflictError{Entity: "taste profile"}}
			}
			return nil
		}

		res, err := r.db.ExecContext(ctx, `
			UPDATE taste_profiles
			SET like_vector = ?, dislike_vector = ?, version = version + 1, updated_at = ?
			WHERE user_id = ? AND version = ?`,
			nonNilVector(like), nonNilVector(dislike), now, userID, expectedVersion)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("update profile vectors: %w", err)}
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("update profile rows: %w", err)}
		}
		if rows == 0 {
			return &criticalError{err: &domain.ConflictError{Entity: "taste profile"}}
		}
		return nil
	})
}

// AddAvoidPattern appends a pattern to the user's avoid list, creating the
// profile row if needed. The version bump keeps concurrent vector writers honest.
func (r *ProfileRepository) AddAvoidPattern(ctx context.Context, userID string, pattern domain.AvoidPattern) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		profile, err := r.GetProfile(ctx, userID)
		if err != nil {
			return &criticalError{err: err}
		}

		for _, existing := range profile.AvoidPatterns {
			if existing.ID == pattern.ID {
				return &criticalError{err: &domain.ConflictError{Entity: "avoid pattern"}}
			}
		}
		patterns := append(profile.AvoidPatterns, pattern) //nolint:gocritic // new slice on purpose

		if err := r.writeAvoidPatterns(ctx, userID, patterns, profile.Version); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				return err // lost the race, re-read and retry
			}
			if isLockError(err) {
				return err
			}
			return &criticalError{err: err}
		}
		return nil
	})
}

// TouchAvoidPatterns stamps LastTriggered on the given patterns so their
// cooldown window starts. Unknown pattern IDs are ignored.
func (r *ProfileRepository) TouchAvoidPatterns(ctx context.Context, userID string, patternIDs []string, now time.Time) error {
	if len(patternIDs) == 0 {
		return nil
	}
	ids := make(map[string]bool, len(patternIDs))
	for _, id := range patternIDs {
		ids[id] = true
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		profile, err := r.GetProfile(ctx, userID)
		if err != nil {
			return &criticalError{err: err}
		}
		if profile.Version == 0 {
			return nil // nothing stored, nothing to touch
		}

		touched := false
		patterns := make([]domain.AvoidPattern, len(profile.AvoidPatterns))
		copy(patterns, profile.AvoidPatterns)
		for i := range patterns {
			if ids[patterns[i].ID] {
				ts := now.UTC()
				patterns[i].LastTriggered = &ts
				touched = true
			}
		}
		if !touched {
			return nil
		}

		if err := r.writeAvoidPatterns(ctx, userID, patterns, profile.Version); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				return err
			}
			if isLockError(err) {
				return err
			}
			return &criticalError{err: err}
		}
		return nil
	})
}

// writeAvoidPatterns replaces the avoid list under optimistic locking
func (r *ProfileRepository) writeAvoidPatterns(ctx context.Context, userID string, patterns []domain.AvoidPattern, expectedVersion int64) error {
	now := time.Now().UTC()

	if expectedVersion == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO taste_profiles (user_id, like_vector, dislike_vector, avoid_patterns, version, updated_at)
			VALUES (?, '[]', '[]', ?, 1, ?)
			ON CONFLICT(user_id) DO NOTHING`,
			userID, avoidsSQL(patterns), now)
		if err != nil {
			return fmt.Errorf("insert avoid patterns: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert avoid patterns rows: %w", err)
		}
		if rows == 0 {
			return &domain.ConflictError{Entity: "taste profile"}
		}
		return nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE taste_profiles
		SET avoid_patterns = ?, version = version + 1, updated_at = ?
		WHERE user_id = ? AND version = ?`,
		avoidsSQL(patterns), now, userID, expectedVersion)
	if err != nil {
		return fmt.Errorf("update avoid patterns: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update avoid patterns rows: %w", err)
	}
	if rows == 0 {
		return &domain.ConflictError{Entity: "taste profile"}
	}
	return nil
}

// toDomainProfile converts profileSQL to domain.TasteProfile
func toDomainProfile(sqlProfile *profileSQL) *domain.TasteProfile {
	return &domain.TasteProfile{
		UserID:        sqlProfile.UserID,
		Vector:        sqlProfile.LikeVector,
		DislikeVector: sqlProfile.DislikeVector,
		AvoidPatterns: sqlProfile.AvoidPatterns,
		Version:       sqlProfile.Version,
		UpdatedAt:     sqlProfile.UpdatedAt,
	}
}
