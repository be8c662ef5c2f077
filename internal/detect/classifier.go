// Package detect implements the phishing-pattern detection signals: keyword
// substring matching, brand typosquatting similarity, and the classifier
// that combines both into a verdict.
package detect

import "math"

// DefaultBrandThreshold is the minimum similarity for a brand comparison to
// count as an impersonation alert.
const DefaultBrandThreshold = 0.8

// BrandHit is a brand-similarity alert that cleared the threshold.
type BrandHit struct {
	Brand      string
	Similarity float64 // rounded to 2 decimals
}

// Verdict is the classification outcome for a single domain. Keywords and
// Brand are only populated when the verdict is suspicious; sub-threshold
// brand proximity carries no signal and is discarded, not merely unflagged.
type Verdict struct {
	Domain     string
	Suspicious bool
	Keywords   []string
	Brand      *BrandHit
}

// Classifier combines the keyword matcher and similarity scorer into a
// suspicious/clean verdict with supporting evidence.
type Classifier struct {
	matcher   *KeywordMatcher
	scorer    *SimilarityScorer
	threshold float64
}

// NewClassifier wires a classifier from its two signals. A non-positive
// threshold falls back to DefaultBrandThreshold.
func NewClassifier(matcher *KeywordMatcher, scorer *SimilarityScorer, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultBrandThreshold
	}
	return &Classifier{
		matcher:   matcher,
		scorer:    scorer,
		threshold: threshold,
	}
}

// Classify evaluates both signals for a lower-cased domain. It never fails:
// a signal that cannot be computed counts as no match.
func (c *Classifier) Classify(domain string) Verdict {
	v := Verdict{
		Domain:   domain,
		Keywords: c.matcher.Match(domain),
	}

	if brand, similarity := c.scorer.BestMatch(domain); brand != "" && similarity >= c.threshold {
		v.Brand = &BrandHit{
			Brand:      brand,
			Similarity: math.Round(similarity*100) / 100,
		}
	}

	v.Suspicious = len(v.Keywords) > 0 || v.Brand != nil
	return v
}
