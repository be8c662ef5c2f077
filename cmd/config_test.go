package cmd

import (
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func TestBuildLexicon_Overrides(t *testing.T) {
	t.Cleanup(viper.Reset)

	defaults := buildLexicon()
	if len(defaults.Keywords) == 0 || len(defaults.Brands) == 0 {
		t.Fatal("default lexicon is empty")
	}

	viper.Set("detect.keywords", []string{"login"})
	viper.Set("detect.brands", []string{"paypal"})

	lex := buildLexicon()
	if !reflect.DeepEqual(lex.Keywords, []string{"login"}) {
		t.Fatalf("keywords = %v", lex.Keywords)
	}
	if !reflect.DeepEqual(lex.Brands, []string{"paypal"}) {
		t.Fatalf("brands = %v", lex.Brands)
	}
	if len(lex.QueryTerms) == 0 {
		t.Fatal("query terms should keep their default")
	}
}

func TestBuildWeights_Overrides(t *testing.T) {
	t.Cleanup(viper.Reset)

	defaults := buildWeights()
	if defaults.MX != 25 || defaults.BrandMax != 35 || defaults.PerKeyword != 5 ||
		defaults.KeywordCap != 25 || defaults.HighRiskBonus != 15 {
		t.Fatalf("unexpected default weights: %+v", defaults)
	}

	viper.Set("score.mx", 30)
	viper.Set("score.high_risk", []string{"wire"})

	weights := buildWeights()
	if weights.MX != 30 {
		t.Fatalf("mx weight = %d, want 30", weights.MX)
	}
	if !reflect.DeepEqual(weights.HighRisk, []string{"wire"}) {
		t.Fatalf("high risk = %v", weights.HighRisk)
	}
	// Untouched weights keep their defaults.
	if weights.BrandMax != 35 {
		t.Fatalf("brand max = %d, want 35", weights.BrandMax)
	}
}
