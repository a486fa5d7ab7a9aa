package recommender

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cinematch/cinematch/pkg/domain"
)

// ScorerConfig holds the scoring policy constants. All weights and thresholds
// are tunable; zero values are replaced with defaults by NewScorer.
type ScorerConfig struct {
	RelevanceWeight float64 // weight of similarity to the like vector
	DislikeWeight   float64 // weight of similarity to the dislike vector, subtracted
	NoveltyWeight   float64 // weight of dissimilarity to recently served items

	SafeThreshold     float64 // relevance at or above this is a safe pick
	AdjacentThreshold float64 // relevance at or above this is adjacent
	AdjacentNovelty   float64 // novelty at or above this also qualifies as adjacent

	MinAvoidConfidence float64 // avoid patterns below this confidence are ignored
	HardAvoidThreshold float64 // total avoid penalty at or above this drops the candidate

	GenreRepeatWeight  float64 // repeat penalty per overrepresented genre
	DecadeRepeatWeight float64 // repeat penalty for overrepresented decade
	MaxRepeatPenalty   float64 // cap on the total repeat penalty
}

// withDefaults fills zero fields with the tuned policy defaults
func (c ScorerConfig) withDefaults() ScorerConfig {
	if c.RelevanceWeight == 0 {
		c.RelevanceWeight = 1.0
	}
	if c.DislikeWeight == 0 {
		c.DislikeWeight = 0.7
	}
	if c.NoveltyWeight == 0 {
		c.NoveltyWeight = 0.2
	}
	if c.SafeThreshold == 0 {
		c.SafeThreshold = 0.45
	}
	if c.AdjacentThreshold == 0 {
		c.AdjacentThreshold = 0.30
	}
	if c.AdjacentNovelty == 0 {
		c.AdjacentNovelty = 0.70
	}
	if c.MinAvoidConfidence == 0 {
		c.MinAvoidConfidence = 0.6
	}
	if c.HardAvoidThreshold == 0 {
		c.HardAvoidThreshold = 0.8
	}
	if c.GenreRepeatWeight == 0 {
		c.GenreRepeatWeight = 0.20
	}
	if c.DecadeRepeatWeight == 0 {
		c.DecadeRepeatWeight = 0.12
	}
	if c.MaxRepeatPenalty == 0 {
		c.MaxRepeatPenalty = 0.5
	}
	return c
}

// Scorer computes composite scores for candidates against a taste profile.
// Scoring is a pure computation over already-fetched data and holds no locks.
type Scorer struct {
	cfg ScorerConfig
}

// NewScorer creates a scorer with the given policy, filling defaults
func NewScorer(cfg ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg.withDefaults()}
}

// RepeatContext aggregates genre and decade frequencies of recently served
// and watched items, used to penalize candidates that repeat the same context.
type RepeatContext struct {
	GenreCounts  map[string]int
	DecadeCounts map[int]int
	Total        int
}

// BuildRepeatContext computes genre/decade frequencies from recent items
func BuildRepeatContext(recent []domain.Candidate) RepeatContext {
	rc := RepeatContext{
		GenreCounts:  make(map[string]int),
		DecadeCounts: make(map[int]int),
		Total:        len(recent),
	}
	for i := range recent {
		for _, g := range recent[i].Genres {
			rc.GenreCounts[strings.ToLower(g)]++
		}
		if dec := recent[i].Decade(); dec != 0 {
			rc.DecadeCounts[dec]++
		}
	}
	return rc
}

// Score evaluates every candidate and returns them ordered by composite score.
// Candidates whose avoid penalty reaches the hard-exclusion threshold are
// dropped. The ordering is fully deterministic: ties break by higher relevance,
// then lower avoid penalty, then ascending item ID.
func (s *Scorer) Score(profile *domain.TasteProfile, candidates []domain.Candidate,
	recentVectors [][]float64, repeatCtx RepeatContext, now time.Time) []domain.ScoredCandidate {

	coldStart := profile.ColdStart()
	scored := make([]domain.ScoredCandidate, 0, len(candidates))

	for i := range candidates {
		cand := candidates[i]

		var relevance, dislikeSim float64
		if !coldStart {
			relevance = CosineSimilarity(cand.Vector, profile.Vector)
			dislikeSim = CosineSimilarity(cand.Vector, profile.DislikeVector)
		}

		novelty := s.novelty(cand.Vector, recentVectors)
		repeatPen := s.repeatPenalty(&cand, repeatCtx)
		avoidPen, triggered := s.avoidPenalty(&cand, profile.AvoidPatterns, now)

		if avoidPen >= s.cfg.HardAvoidThreshold {
			continue
		}

		score := s.cfg.RelevanceWeight*relevance -
			s.cfg.DislikeWeight*dislikeSim +
			s.cfg.NoveltyWeight*novelty -
			repeatPen - avoidPen

		sc := domain.ScoredCandidate{
			Candidate:       cand,
			Relevance:       relevance,
			DislikeSim:      dislikeSim,
			Novelty:         novelty,
			AvoidPenalty:    avoidPen,
			RepeatPenalty:   repeatPen,
			Score:           score,
			Strategy:        s.strategy(relevance, novelty),
			TriggeredAvoids: triggered,
			Debug: fmt.Sprintf("like=%.3f dislike=%.3f nov=%.2f rep=%.2f avoid=%.2f",
				relevance, dislikeSim, novelty, repeatPen, avoidPen),
		}
		scored = append(scored, sc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Relevance != scored[j].Relevance {
			return scored[i].Relevance > scored[j].Relevance
		}
		if scored[i].AvoidPenalty != scored[j].AvoidPenalty {
			return scored[i].AvoidPenalty < scored[j].AvoidPenalty
		}
		return scored[i].ItemID < scored[j].ItemID
	})

	s.ensureWildcard(scored)
	return scored
}

// novelty is 1 minus the strongest positive similarity to recently served
// vectors, clamped to [0,1]. No recent history means full novelty.
func (s *Scorer) novelty(vec []float64, recentVectors [][]float64) float64 {
	maxSim := 0.0
	for _, rv := range recentVectors {
		if sim := CosineSimilarity(vec, rv); sim > maxSim {
			maxSim = sim
		}
	}
	return clamp(1.0-maxSim, 0.0, 1.0)
}

// repeatPenalty penalizes candidates whose genres and decade dominate the
// recent serving context, capped so it never drowns out relevance.
func (s *Scorer) repeatPenalty(cand *domain.Candidate, rc RepeatContext) float64 {
	if rc.Total <= 0 {
		return 0
	}

	penalty := 0.0
	genres := cand.Genres
	if len(genres) > 4 {
		genres = genres[:4]
	}
	for _, g := range genres {
		freq := float64(rc.GenreCounts[strings.ToLower(g)]) / float64(rc.Total)
		penalty += s.cfg.GenreRepeatWeight * freq
	}

	if dec := cand.Decade(); dec != 0 {
		freq := float64(rc.DecadeCounts[dec]) / float64(rc.Total)
		penalty += s.cfg.DecadeRepeatWeight * freq
	}

	return clamp(penalty, 0.0, s.cfg.MaxRepeatPenalty)
}

// avoidPenalty soft-matches candidate text against the profile's avoid
// patterns. Each active pattern contributes its weight scaled by the fraction
// of its keywords found, so partial overlap yields partial penalty.
func (s *Scorer) avoidPenalty(cand *domain.Candidate, patterns []domain.AvoidPattern, now time.Time) (penalty float64, triggered []string) {
	if len(patterns) == 0 {
		return 0, nil
	}

	text := candidateText(cand)
	for i := range patterns {
		p := &patterns[i]
		if !p.Active(now, s.cfg.MinAvoidConfidence) {
			continue
		}

		matched := 0
		for _, kw := range p.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(text, kw) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		penalty += -p.Weight * float64(matched) / float64(len(p.Keywords))
		triggered = append(triggered, p.ID)
	}
	return penalty, triggered
}

// strategy classifies the pick: safe when solidly within the taste profile,
// adjacent when near it or pointedly novel, wildcard otherwise
func (s *Scorer) strategy(relevance, novelty float64) domain.Strategy {
	switch {
	case relevance >= s.cfg.SafeThreshold:
		return domain.StrategySafe
	case relevance >= s.cfg.AdjacentThreshold || novelty >= s.cfg.AdjacentNovelty:
		return domain.StrategyAdjacent
	default:
		return domain.StrategyWildcard
	}
}

// ensureWildcard guarantees exploration: when the pool has room and no
// candidate classified as wildcard, the least relevant one is relabeled
func (s *Scorer) ensureWildcard(scored []domain.ScoredCandidate) {
	if len(scored) < 2 {
		return
	}
	lowest := -1
	for i := range scored {
		if scored[i].Strategy == domain.StrategyWildcard {
			return
		}
		if lowest < 0 || scored[i].Relevance < scored[lowest].Relevance {
			lowest = i
		}
	}
	scored[lowest].Strategy = domain.StrategyWildcard
}

// candidateText flattens a candidate's title, genres and keywords into one
// lowercased string for avoid-pattern matching
func candidateText(cand *domain.Candidate) string {
	var sb strings.Builder
	sb.WriteString(cand.Title)
	for _, g := range cand.Genres {
		sb.WriteString("\n")
		sb.WriteString(g)
	}
	for _, k := range cand.Keywords {
		sb.WriteString("\n")
		sb.WriteString(k)
	}
	return strings.ToLower(sb.String())
}
