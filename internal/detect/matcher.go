package detect

import "strings"

// KeywordMatcher reports which lexicon keywords occur inside a domain.
type KeywordMatcher struct {
	keywords []string
}

// NewKeywordMatcher builds a matcher over the given keyword list.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	return &KeywordMatcher{keywords: keywords}
}

// Match returns every keyword that occurs as a substring of domain, in
// keyword-list order. Overlapping matches are all reported. The domain is
// expected to be lower-cased already; no other normalization is applied.
func (m *KeywordMatcher) Match(domain string) []string {
	var matched []string
	for _, k := range m.keywords {
		if strings.Contains(domain, k) {
			matched = append(matched, k)
		}
	}
	return matched
}
