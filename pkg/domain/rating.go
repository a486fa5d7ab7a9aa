package domain

import "time"

// rating bounds, half-point steps
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// RatedItem is a user's rating of a single item, optionally with a free-text
// review. The record is append-only; the embedding is attached later by the
// job queue and is write-once. Incorporated marks that the embedding has been
// folded into the taste profile, making re-application idempotent.
type RatedItem struct {
	ID           int64
	UserID       string
	ItemID       int64
	Rating       float64
	Review       string
	Embedding    []float64
	Incorporated bool
	CreatedAt    time.Time
}

// ValidRating checks the rating is within bounds and on a half-point step
func ValidRating(r float64) bool {
	if r < MinRating || r > MaxRating {
		return false
	}
	doubled := r * 2
	return doubled == float64(int64(doubled))
}
