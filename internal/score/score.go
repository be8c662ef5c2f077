// Package score maps detection evidence to a composite 0-100 threat score
// and a discrete severity level. Both functions are pure and total.
package score

// Level is the discrete severity bucket for a threat score.
type Level string

const (
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

// Input carries the evidence fields the scorer consumes.
type Input struct {
	MX              bool
	BrandSimilarity float64 // 0 when no brand alert
	Keywords        []string
}

// Weights parameterize the additive threat score. The default values are
// product constants; keep them unless guidance says otherwise.
type Weights struct {
	MX            int      // added when the domain publishes MX records
	BrandMax      int      // scaled by brand similarity, floored
	PerKeyword    int      // per matched keyword
	KeywordCap    int      // upper bound on the keyword term
	HighRiskBonus int      // added once when any high-risk keyword matched
	HighRisk      []string // exact lowercase keyword tokens
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		MX:            25,
		BrandMax:      35,
		PerKeyword:    5,
		KeywordCap:    25,
		HighRiskBonus: 15,
		HighRisk: []string{
			"login", "password", "passwd", "bank",
			"crypto", "wallet", "verify", "secure",
		},
	}
}

// Score computes the composite threat score for the given evidence. Terms
// are applied in fixed order (MX, brand, keywords, high-risk bonus) and the
// sum is clamped to [0, 100].
func (w Weights) Score(in Input) int {
	total := 0

	if in.MX {
		total += w.MX
	}

	if in.BrandSimilarity > 0 {
		// 0.8 similarity -> 28, 1.0 -> 35 with default weights.
		total += int(in.BrandSimilarity * float64(w.BrandMax))
	}

	keywordTerm := len(in.Keywords) * w.PerKeyword
	if keywordTerm > w.KeywordCap {
		keywordTerm = w.KeywordCap
	}
	total += keywordTerm

	if w.anyHighRisk(in.Keywords) {
		total += w.HighRiskBonus
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total
}

func (w Weights) anyHighRisk(keywords []string) bool {
	for _, k := range keywords {
		for _, h := range w.HighRisk {
			if k == h {
				return true
			}
		}
	}
	return false
}

// LevelFor maps a score to its severity label, highest bucket first.
func LevelFor(score int) Level {
	switch {
	case score >= 75:
		return LevelCritical
	case score >= 50:
		return LevelHigh
	case score >= 25:
		return LevelMedium
	default:
		return LevelLow
	}
}
