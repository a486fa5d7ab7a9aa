package recommender

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-pkgz/lgr"

	"github.com/cinematch/cinematch/pkg/domain"
)

//go:generate moq -out mocks/rating_store.go -pkg mocks -skip-ensure -fmt goimports . RatingStore
//go:generate moq -out mocks/profile_writer.go -pkg mocks -skip-ensure -fmt goimports . ProfileWriter

// RatingStore supplies rated items for profile recomputation
type RatingStore interface {
	GetRatedItem(ctx context.Context, id int64) (*domain.RatedItem, error)
	GetEmbeddedRatedItems(ctx context.Context, userID string, limit int) ([]domain.RatedItem, error)
	MarkIncorporated(ctx context.Context, id int64) error
}

// ProfileWriter persists recomputed taste vectors with optimistic locking
type ProfileWriter interface {
	GetProfile(ctx context.Context, userID string) (*domain.TasteProfile, error)
	UpdateVectors(ctx context.Context, userID string, like, dislike []float64, expectedVersion int64) error
}

// ProfileUpdaterConfig holds the recomputation policy
type ProfileUpdaterConfig struct {
	LikeThreshold    float64 // ratings at or above contribute to the like vector
	DislikeThreshold float64 // ratings at or below contribute to the dislike vector
	MaxRatedItems    int     // most recent rated items considered
	CASRetries       int     // bounded internal retries on version conflict
}

// ProfileUpdater recomputes a user's taste vectors from rated-item embeddings.
// Recomputation is a full rebuild over all incorporated embeddings, which makes
// application idempotent under out-of-order and duplicate embedding arrival.
type ProfileUpdater struct {
	ratings  RatingStore
	profiles ProfileWriter
	cfg      ProfileUpdaterConfig
}

// NewProfileUpdater creates a profile updater, filling config defaults
func NewProfileUpdater(ratings RatingStore, profiles ProfileWriter, cfg ProfileUpdaterConfig) *ProfileUpdater {
	if cfg.LikeThreshold == 0 {
		cfg.LikeThreshold = 4.0
	}
	if cfg.DislikeThreshold == 0 {
		cfg.DislikeThreshold = 2.5
	}
	if cfg.MaxRatedItems == 0 {
		cfg.MaxRatedItems = 200
	}
	if cfg.CASRetries == 0 {
		cfg.CASRetries = 3
	}
	return &ProfileUpdater{ratings: ratings, profiles: profiles, cfg: cfg}
}

// ApplyRating incorporates a rated item's embedding into the user's profile.
// The incorporated flag only gates double counting inside the rebuild; the
// recompute itself runs on every delivery, so a redelivered job after a
// transient recompute failure still brings the profile up to date.
func (u *ProfileUpdater) ApplyRating(ctx context.Context, ratedItemID int64) error {
	item, err := u.ratings.GetRatedItem(ctx, ratedItemID)
	if err != nil {
		return fmt.Errorf("get rated item %d: %w", ratedItemID, err)
	}
	if len(item.Embedding) == 0 {
		lgr.Printf("[DEBUG] rated item %d has no embedding yet, skipping", ratedItemID)
		return nil
	}

	if !item.Incorporated {
		if err := u.ratings.MarkIncorporated(ctx, ratedItemID); err != nil {
			return fmt.Errorf("mark rated item %d incorporated: %w", ratedItemID, err)
		}
	}

	return u.Recompute(ctx, item.UserID)
}

// Recompute rebuilds the like and dislike vectors for the user from all
// embedded rated items and stores them with a version bump. Version conflicts
// from concurrent writers are retried a small bounded number of times.
func (u *ProfileUpdater) Recompute(ctx context.Context, userID string) error {
	var lastErr error
	for attempt := 0; attempt < u.cfg.CASRetries; attempt++ {
		profile, err := u.profiles.GetProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("get profile for %s: %w", userID, err)
		}

		items, err := u.ratings.GetEmbeddedRatedItems(ctx, userID, u.cfg.MaxRatedItems)
		if err != nil {
			return fmt.Errorf("get embedded rated items for %s: %w", userID, err)
		}

		like, dislike := u.buildVectors(items)

		err = u.profiles.UpdateVectors(ctx, userID, like, dislike, profile.Version)
		if err == nil {
			lgr.Printf("[INFO] recomputed taste profile for %s from %d rated items (version %d)", userID, len(items), profile.Version+1)
			return nil
		}

		var conflictErr *domain.ConflictError
		if !errors.As(err, &conflictErr) {
			return fmt.Errorf("update profile vectors for %s: %w", userID, err)
		}
		lastErr = err
		lgr.Printf("[DEBUG] profile version conflict for %s, retrying (%d/%d)", userID, attempt+1, u.cfg.CASRetries)
	}
	return &domain.TransientError{Op: "profile recompute", Err: lastErr}
}

// buildVectors splits rated items into like and dislike sets and computes
// weighted centroids. Extreme ratings weigh more than neutral ones: the weight
// grows linearly with the rating's distance from the scale midpoint.
func (u *ProfileUpdater) buildVectors(items []domain.RatedItem) (like, dislike []float64) {
	const midpoint = (domain.MaxRating + domain.MinRating) / 2

	var likeVecs, dislikeVecs []WeightedVector
	for i := range items {
		if len(items[i].Embedding) == 0 || !items[i].Incorporated {
			continue
		}
		weight := 1.0 + math.Abs(items[i].Rating-midpoint)/midpoint
		switch {
		case items[i].Rating >= u.cfg.LikeThreshold:
			likeVecs = append(likeVecs, WeightedVector{Vector: items[i].Embedding, Weight: weight})
		case items[i].Rating <= u.cfg.DislikeThreshold:
			dislikeVecs = append(dislikeVecs, WeightedVector{Vector: items[i].Embedding, Weight: weight})
		}
	}
	return WeightedAverage(likeVecs), WeightedAverage(dislikeVecs)
}
