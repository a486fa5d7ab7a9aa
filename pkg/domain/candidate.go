package domain

// Candidate is an unscored item from the candidate source, alive only for the
// duration of one recommendation request.
type Candidate struct {
	ItemID      int64
	Title       string
	Vector      []float64
	Genres      []string
	Keywords    []string
	ReleaseYear int
	Popularity  float64
	VoteAverage float64
}

// Decade returns the candidate's release decade, 0 when the year is unknown
func (c *Candidate) Decade() int {
	if c.ReleaseYear <= 0 {
		return 0
	}
	return (c.ReleaseYear / 10) * 10
}

// Quality is used to pick the better duplicate when candidate pools overlap
func (c *Candidate) Quality() float64 {
	return c.VoteAverage + c.Popularity/100
}

// Strategy classifies how adventurous a pick is relative to the user's taste
type Strategy string

// strategy labels, from closest to the profile to most exploratory
const (
	StrategySafe     Strategy = "safe"
	StrategyAdjacent Strategy = "adjacent"
	StrategyWildcard Strategy = "wildcard"
)

// ScoredCandidate carries a candidate together with the numeric components
// that produced its composite score, for explainability.
type ScoredCandidate struct {
	Candidate
	Relevance       float64 // cosine similarity to the taste vector, [-1,1]
	DislikeSim      float64
	Novelty         float64 // 1 - decayed overlap with recently served items
	AvoidPenalty    float64
	RepeatPenalty   float64
	Score           float64
	Strategy        Strategy
	TriggeredAvoids []string
	Debug           string
}

// Recommendation is a single entry of the final ordered result set
type Recommendation struct {
	ItemID      int64    `json:"item_id"`
	Title       string   `json:"title,omitempty"`
	Strategy    Strategy `json:"strategy"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation,omitempty"`
}
