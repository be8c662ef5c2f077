package detect

import (
	"reflect"
	"testing"

	"certwatch/internal/lexicon"
)

func newTestClassifier() *Classifier {
	return NewClassifier(
		NewKeywordMatcher([]string{"login", "verify", "secure"}),
		NewSimilarityScorer([]string{"paypal", "google"}),
		DefaultBrandThreshold,
	)
}

func TestClassifier_KeywordOnly(t *testing.T) {
	c := newTestClassifier()

	v := c.Classify("login-example.com")
	if !v.Suspicious {
		t.Fatal("expected suspicious verdict")
	}
	if !reflect.DeepEqual(v.Keywords, []string{"login"}) {
		t.Fatalf("keywords = %v, want [login]", v.Keywords)
	}
	if v.Brand != nil {
		t.Fatalf("sub-threshold brand proximity must be discarded, got %+v", v.Brand)
	}
}

func TestClassifier_BrandOnly(t *testing.T) {
	c := newTestClassifier()

	v := c.Classify("googl3.com")
	if !v.Suspicious {
		t.Fatal("expected suspicious verdict")
	}
	if len(v.Keywords) != 0 {
		t.Fatalf("expected no keywords, got %v", v.Keywords)
	}
	if v.Brand == nil {
		t.Fatal("expected brand alert")
	}
	if v.Brand.Brand != "google" {
		t.Fatalf("brand = %q, want google", v.Brand.Brand)
	}
	// 1 - 1/6 rounded to 2 decimals.
	if v.Brand.Similarity != 0.83 {
		t.Fatalf("similarity = %v, want 0.83", v.Brand.Similarity)
	}
}

func TestClassifier_ExactContainmentIsFullMatch(t *testing.T) {
	c := newTestClassifier()

	v := c.Classify("secure-paypal-login.com")
	if v.Brand == nil || v.Brand.Brand != "paypal" || v.Brand.Similarity != 1.0 {
		t.Fatalf("expected paypal at 1.0, got %+v", v.Brand)
	}
	if !reflect.DeepEqual(v.Keywords, []string{"login", "secure"}) {
		t.Fatalf("keywords = %v, want [login secure]", v.Keywords)
	}
}

func TestClassifier_Clean(t *testing.T) {
	// Use the full default lexicon: these two must never be flagged.
	lex := lexicon.Default()
	c := NewClassifier(
		NewKeywordMatcher(lex.Keywords),
		NewSimilarityScorer(lex.Brands),
		DefaultBrandThreshold,
	)

	for _, domain := range []string{"legitimate-website.com", "random-domain.org"} {
		t.Run(domain, func(t *testing.T) {
			v := c.Classify(domain)
			if v.Suspicious {
				t.Fatalf("expected clean verdict, got %+v", v)
			}
			if len(v.Keywords) != 0 || v.Brand != nil {
				t.Fatalf("clean verdict must carry no evidence, got %+v", v)
			}
		})
	}
}

func TestClassifier_DegradedScorerUsesKeywordSignal(t *testing.T) {
	c := NewClassifier(
		NewKeywordMatcher([]string{"verify"}),
		NewSimilarityScorer([]string{"paypal"}, WithDistanceFunc(nil)),
		DefaultBrandThreshold,
	)

	v := c.Classify("paypal-verify.com")
	if !v.Suspicious {
		t.Fatal("keyword signal must still classify when similarity backend is absent")
	}
	if v.Brand != nil {
		t.Fatalf("expected no brand alert without a backend, got %+v", v.Brand)
	}
}
