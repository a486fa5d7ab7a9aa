package recommender

import (
	"sort"

	"github.com/cinematch/cinematch/pkg/domain"
)

// redundancy assumed for candidates without a feature vector; keeps them
// selectable without letting them bypass the diversity trade-off entirely
const missingVectorRedundancy = 0.2

// Diversifier selects the final ordered subset via maximal marginal relevance:
// the highest-scoring candidate goes first, then each following pick maximizes
// lambda*score - (1-lambda)*maxSimilarityToSelected. Lambda of 1 degenerates
// to plain top-k by score.
type Diversifier struct {
	lambda float64
}

// NewDiversifier creates a diversifier with the given relevance/diversity
// trade-off. Out-of-range lambda falls back to the tuned default of 0.75.
func NewDiversifier(lambda float64) *Diversifier {
	if lambda <= 0 || lambda > 1 {
		lambda = 0.75
	}
	return &Diversifier{lambda: lambda}
}

// Select picks up to k candidates. The output order is the selection order,
// contains no duplicate item IDs, and is deterministic for identical inputs.
// When fewer than k candidates are available all of them are returned.
func (d *Diversifier) Select(scored []domain.ScoredCandidate, k int) []domain.ScoredCandidate {
	if len(scored) == 0 || k <= 0 {
		return []domain.ScoredCandidate{}
	}

	remaining := make([]domain.ScoredCandidate, len(scored))
	copy(remaining, scored)
	sort.SliceStable(remaining, func(i, j int) bool {
		if remaining[i].Score != remaining[j].Score {
			return remaining[i].Score > remaining[j].Score
		}
		return remaining[i].ItemID < remaining[j].ItemID
	})

	selected := make([]domain.ScoredCandidate, 0, k)
	selectedIDs := make(map[int64]bool, k)

	for len(remaining) > 0 && len(selected) < k {
		bestIdx := 0
		if len(selected) > 0 {
			bestMMR := 0.0
			for idx := range remaining {
				mmr := d.lambda*remaining[idx].Score - (1-d.lambda)*d.redundancy(&remaining[idx], selected)
				if idx == 0 || mmr > bestMMR {
					bestMMR = mmr
					bestIdx = idx
				}
			}
		}

		pick := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		if selectedIDs[pick.ItemID] {
			continue
		}
		selected = append(selected, pick)
		selectedIDs[pick.ItemID] = true
	}

	return selected
}

// redundancy is the strongest positive similarity between the candidate and
// anything already selected
func (d *Diversifier) redundancy(cand *domain.ScoredCandidate, selected []domain.ScoredCandidate) float64 {
	if len(cand.Vector) == 0 {
		return missingVectorRedundancy
	}
	max := 0.0
	for i := range selected {
		if len(selected[i].Vector) == 0 {
			continue
		}
		if sim := CosineSimilarity(cand.Vector, selected[i].Vector); sim > max {
			max = sim
		}
	}
	return max
}
