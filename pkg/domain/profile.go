package domain

import "time"

// TasteProfile represents a user's aggregate preference state. The vector is a
// weighted centroid of the user's rated-item embeddings; Version increases on
// every contributing update and is used for optimistic concurrency control.
type TasteProfile struct {
	UserID        string
	Vector        []float64
	DislikeVector []float64
	AvoidPatterns []AvoidPattern
	Version       int64
	UpdatedAt     time.Time
}

// ColdStart reports whether the profile has no usable taste vector yet
func (p *TasteProfile) ColdStart() bool {
	for _, v := range p.Vector {
		if v != 0 {
			return false
		}
	}
	return true
}

// AvoidPattern is a user-defined exclusion: candidates whose text overlaps the
// keywords get a score penalty proportional to Weight. Patterns cool down after
// they influenced a served pick, so a single avoid does not dominate every request.
type AvoidPattern struct {
	ID            string     `json:"id"`
	Keywords      []string   `json:"keywords"`
	Weight        float64    `json:"weight"`     // negative, e.g. -0.3
	Confidence    float64    `json:"confidence"` // patterns below min confidence are ignored
	CooldownDays  int        `json:"cooldown_days"`
	LastTriggered *time.Time `json:"last_triggered,omitempty"`
}

// Active reports whether the pattern should be applied at the given time
func (a *AvoidPattern) Active(now time.Time, minConfidence float64) bool {
	if a.ID == "" || a.Confidence < minConfidence || a.Weight >= 0 {
		return false
	}
	if len(a.Keywords) == 0 {
		return false
	}
	if a.LastTriggered != nil {
		cooldown := time.Duration(a.CooldownDays) * 24 * time.Hour
		if cooldown > 0 && now.Sub(*a.LastTriggered) < cooldown {
			return false
		}
	}
	return true
}
