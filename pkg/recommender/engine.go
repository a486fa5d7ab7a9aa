package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/cinematch/cinematch/pkg/domain"
)

//go:generate moq -out mocks/profile_store.go -pkg mocks -skip-ensure -fmt goimports . ProfileStore
//go:generate moq -out mocks/candidate_source.go -pkg mocks -skip-ensure -fmt goimports . CandidateSource
//go:generate moq -out mocks/recency_tracker.go -pkg mocks -skip-ensure -fmt goimports . RecencyTracker
//go:generate moq -out mocks/rate_limiter.go -pkg mocks -skip-ensure -fmt goimports . RateLimiter
//go:generate moq -out mocks/explainer.go -pkg mocks -skip-ensure -fmt goimports . Explainer

// ProfileStore supplies taste profiles and records avoid-pattern activity
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.TasteProfile, error)
	TouchAvoidPatterns(ctx context.Context, userID string, patternIDs []string, now time.Time) error
}

// CandidateSource returns an unscored candidate pool with feature vectors.
// Implementations are expected to degrade to an empty list on outage.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, profile *domain.TasteProfile, excludeIDs map[int64]bool, coldStart bool) ([]domain.Candidate, error)
}

// RecencyTracker suppresses recently served items and records the served set
type RecencyTracker interface {
	Filter(ctx context.Context, userID string, candidates []domain.Candidate) ([]domain.Candidate, error)
	Record(ctx context.Context, userID string, itemIDs []int64, now time.Time) error
	RecentItems(ctx context.Context, userID string, limit int) ([]domain.Candidate, error)
}

// RateLimiter gates actions per (user, action) with a minimum interval
type RateLimiter interface {
	CheckAndTouch(ctx context.Context, userID, action string, minInterval time.Duration) (allowed bool, retryAfter time.Duration, err error)
}

// Explainer produces a short human-readable reason for a pick
type Explainer interface {
	Explain(ctx context.Context, pick domain.ScoredCandidate, profile *domain.TasteProfile) (string, error)
}

// rate-limited action kinds
const (
	ActionRecommend = "recommend"
	ActionReview    = "review"
)

// Config holds engine policy parameters; zero values get tuned defaults
type Config struct {
	Scorer            ScorerConfig
	Lambda            float64       // MMR relevance/diversity trade-off
	RateLimitInterval time.Duration // minimum interval between recommendation requests per user
	MaxCount          int           // upper bound on requested picks
	RecentLimit       int           // recently served items considered for novelty and repeat context
	MinPoolVectors    int           // below this many embedded candidates the engine tops up with a cold-start pool
}

// Engine runs the full recommendation pipeline: rate-limit gate, profile
// load, candidate retrieval, recency filtering, scoring, MMR diversification
// and recording of the served set. Scoring and diversification are pure;
// only the final recording step touches shared state.
type Engine struct {
	profiles    ProfileStore
	source      CandidateSource
	recency     RecencyTracker
	limiter     RateLimiter
	explainer   Explainer
	scorer      *Scorer
	diversifier *Diversifier
	cfg         Config
}

// NewEngine creates an engine. The explainer may be nil to skip explanations.
func NewEngine(profiles ProfileStore, source CandidateSource, recency RecencyTracker,
	limiter RateLimiter, explainer Explainer, cfg Config) *Engine {

	if cfg.RateLimitInterval == 0 {
		cfg.RateLimitInterval = time.Minute
	}
	if cfg.MaxCount == 0 {
		cfg.MaxCount = 20
	}
	if cfg.RecentLimit == 0 {
		cfg.RecentLimit = 100
	}
	if cfg.MinPoolVectors == 0 {
		cfg.MinPoolVectors = 10
	}

	return &Engine{
		profiles:    profiles,
		source:      source,
		recency:     recency,
		limiter:     limiter,
		explainer:   explainer,
		scorer:      NewScorer(cfg.Scorer),
		diversifier: NewDiversifier(cfg.Lambda),
		cfg:         cfg,
	}
}

// Recommend produces up to count picks for the user. A short or empty result
// is a valid degraded outcome; callers must not treat it as an error.
func (e *Engine) Recommend(ctx context.Context, userID string, count int) ([]domain.Recommendation, error) {
	if userID == "" {
		return nil, &domain.ValidationError{Field: "user_id", Reason: "must not be empty"}
	}
	if count < 1 || count > e.cfg.MaxCount {
		return nil, &domain.ValidationError{Field: "count", Reason: fmt.Sprintf("must be between 1 and %d", e.cfg.MaxCount)}
	}

	allowed, retryAfter, err := e.limiter.CheckAndTouch(ctx, userID, ActionRecommend, e.cfg.RateLimitInterval)
	if err != nil {
		return nil, &domain.TransientError{Op: "rate limit check", Err: err}
	}
	if !allowed {
		return nil, &domain.RateLimitError{RetryAfter: retryAfter}
	}

	profile, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, &domain.TransientError{Op: "get profile", Err: err}
	}

	recent, err := e.recency.RecentItems(ctx, userID, e.cfg.RecentLimit)
	if err != nil {
		lgr.Printf("[WARN] failed to load recent items for %s: %v", userID, err)
		recent = nil // novelty degrades gracefully without history
	}

	pool := e.fetchPool(ctx, profile)
	if len(pool) == 0 {
		lgr.Printf("[INFO] empty candidate pool for user %s", userID)
		return []domain.Recommendation{}, nil
	}

	filtered, err := e.recency.Filter(ctx, userID, pool)
	if err != nil {
		return nil, &domain.TransientError{Op: "recency filter", Err: err}
	}
	if len(filtered) == 0 {
		return []domain.Recommendation{}, nil
	}

	recentVectors := make([][]float64, 0, len(recent))
	for i := range recent {
		if len(recent[i].Vector) > 0 {
			recentVectors = append(recentVectors, recent[i].Vector)
		}
	}

	now := time.Now()
	scored := e.scorer.Score(profile, filtered, recentVectors, BuildRepeatContext(recent), now)
	selected := e.diversifier.Select(scored, count)
	if len(selected) == 0 {
		return []domain.Recommendation{}, nil
	}

	// recording happens only after a successful selection; an abandoned or
	// failed request must not leave a partial recency entry
	servedIDs := make([]int64, len(selected))
	for i := range selected {
		servedIDs[i] = selected[i].ItemID
	}
	if err := e.recency.Record(ctx, userID, servedIDs, now); err != nil {
		return nil, &domain.TransientError{Op: "record served items", Err: err}
	}

	e.touchTriggeredAvoids(ctx, userID, selected, now)

	return e.buildResult(ctx, profile, selected), nil
}

// fetchPool retrieves candidates, falling back to the cold-start pool when the
// profile is empty or too few candidates carry embeddings. Outages degrade to
// an empty pool instead of failing the request.
func (e *Engine) fetchPool(ctx context.Context, profile *domain.TasteProfile) []domain.Candidate {
	coldStart := profile.ColdStart()

	pool, err := e.source.FetchCandidates(ctx, profile, nil, coldStart)
	if err != nil {
		lgr.Printf("[WARN] candidate fetch failed for user %s: %v", profile.UserID, err)
		return nil
	}

	if coldStart {
		return pool
	}

	withVectors := 0
	for i := range pool {
		if len(pool[i].Vector) > 0 {
			withVectors++
		}
	}
	if withVectors >= e.cfg.MinPoolVectors {
		return pool
	}

	// thin personalized pool, top up with the popularity-based cold-start set
	lgr.Printf("[INFO] only %d embedded candidates for user %s, topping up with cold-start pool", withVectors, profile.UserID)
	exclude := make(map[int64]bool, len(pool))
	for i := range pool {
		exclude[pool[i].ItemID] = true
	}
	extra, err := e.source.FetchCandidates(ctx, profile, exclude, true)
	if err != nil {
		lgr.Printf("[WARN] cold-start top-up failed for user %s: %v", profile.UserID, err)
		return pool
	}
	return append(pool, extra...)
}

// touchTriggeredAvoids stamps last_triggered on avoid patterns that actually
// influenced the served picks, starting their cooldown. Best effort.
func (e *Engine) touchTriggeredAvoids(ctx context.Context, userID string, selected []domain.ScoredCandidate, now time.Time) {
	seen := make(map[string]bool)
	var ids []string
	for i := range selected {
		for _, pid := range selected[i].TriggeredAvoids {
			if !seen[pid] {
				seen[pid] = true
				ids = append(ids, pid)
			}
		}
	}
	if len(ids) == 0 {
		return
	}
	if err := e.profiles.TouchAvoidPatterns(ctx, userID, ids, now); err != nil {
		lgr.Printf("[WARN] failed to touch avoid patterns for %s: %v", userID, err)
	}
}

// buildResult converts selected candidates to recommendations, attaching
// best-effort explanations when an explainer is configured
func (e *Engine) buildResult(ctx context.Context, profile *domain.TasteProfile, selected []domain.ScoredCandidate) []domain.Recommendation {
	result := make([]domain.Recommendation, 0, len(selected))
	for i := range selected {
		rec := domain.Recommendation{
			ItemID:   selected[i].ItemID,
			Title:    selected[i].Title,
			Strategy: selected[i].Strategy,
			Score:    selected[i].Score,
		}
		if e.explainer != nil {
			explanation, err := e.explainer.Explain(ctx, selected[i], profile)
			if err != nil {
				lgr.Printf("[WARN] explanation failed for item %d: %v", selected[i].ItemID, err)
			} else {
				rec.Explanation = explanation
			}
		}
		result = append(result, rec)
	}
	return result
}
