package detect

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DistanceFunc computes the edit distance between two strings.
type DistanceFunc func(a, b string) int

// SimilarityScorer ranks a domain's base label against a list of known
// brands to catch typosquats.
type SimilarityScorer struct {
	brands   []string
	distance DistanceFunc
}

// SimilarityOption customizes a SimilarityScorer.
type SimilarityOption func(*SimilarityScorer)

// WithDistanceFunc replaces the edit-distance backend. Passing nil disables
// similarity scoring entirely; BestMatch then reports no match.
func WithDistanceFunc(fn DistanceFunc) SimilarityOption {
	return func(s *SimilarityScorer) {
		s.distance = fn
	}
}

// NewSimilarityScorer builds a scorer over the given brand list. Brands are
// compared in list order.
func NewSimilarityScorer(brands []string, opts ...SimilarityOption) *SimilarityScorer {
	s := &SimilarityScorer{
		brands:   brands,
		distance: levenshtein.ComputeDistance,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseLabel extracts the registrable-name component of a domain, ignoring
// the TLD: the second-to-last dot-separated label. Strings without a dot
// are returned whole, so malformed input still compares.
func BaseLabel(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return domain
}

// BestMatch returns the closest brand and a similarity in [0,1]. A brand
// contained verbatim in the base label wins immediately with similarity 1.0
// regardless of its position in the list; otherwise similarity is
// 1 - dist/max(len), and ties keep the earlier brand. Without brands or a
// distance backend it returns ("", 0) so classification degrades to the
// keyword signal alone.
func (s *SimilarityScorer) BestMatch(domain string) (string, float64) {
	if s.distance == nil || len(s.brands) == 0 {
		return "", 0
	}

	base := BaseLabel(domain)

	var (
		bestBrand string
		bestScore float64
	)
	for _, brand := range s.brands {
		if strings.Contains(base, brand) {
			return brand, 1.0
		}

		maxLen := len(base)
		if len(brand) > maxLen {
			maxLen = len(brand)
		}
		if maxLen == 0 {
			// Similarity of two empty strings is undefined.
			continue
		}

		similarity := 1 - float64(s.distance(base, brand))/float64(maxLen)
		if similarity > bestScore {
			bestScore = similarity
			bestBrand = brand
		}
	}

	return bestBrand, bestScore
}
