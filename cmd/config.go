package cmd

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"certwatch/internal/application/ingest"
	"certwatch/internal/ctlog"
	"certwatch/internal/detect"
	"certwatch/internal/infrastructure/persistence/json"
	"certwatch/internal/lexicon"
	"certwatch/internal/report"
	"certwatch/internal/score"
)

const (
	defaultSiteURL        = "https://example.org/certwatch"
	defaultWindowHours    = 6
	defaultCTTimeoutSecs  = 30
	defaultDNSTimeoutSecs = 10
	defaultReportTop      = 20
)

func setConfigDefaults() {
	viper.SetDefault("data_dir", "./data")
	viper.SetDefault("check_dir", "./check")
	viper.SetDefault("site_url", defaultSiteURL)
	viper.SetDefault("retention", ingest.DefaultRetention)
	viper.SetDefault("detect.brand_threshold", detect.DefaultBrandThreshold)
	viper.SetDefault("ct.window_hours", defaultWindowHours)
	viper.SetDefault("ct.timeout_secs", defaultCTTimeoutSecs)
	viper.SetDefault("ct.rate_limit", 1.0)
	viper.SetDefault("dns.timeout_secs", defaultDNSTimeoutSecs)
	viper.SetDefault("report.top", defaultReportTop)
}

func bindConfigFlags(flags *pflag.FlagSet) {
	flags.String("data-dir", "./data", "directory for domains.json and feed.json")
	flags.String("site-url", defaultSiteURL, "public base URL used in feed links")

	_ = viper.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = viper.BindPFlag("site_url", flags.Lookup("site-url"))
}

// buildLexicon returns the default lexicon with any config-file overrides
// applied. Lists replace wholesale; there is no merging.
func buildLexicon() lexicon.Lexicon {
	lex := lexicon.Default()
	if kw := viper.GetStringSlice("detect.keywords"); len(kw) > 0 {
		lex.Keywords = kw
	}
	if brands := viper.GetStringSlice("detect.brands"); len(brands) > 0 {
		lex.Brands = brands
	}
	if terms := viper.GetStringSlice("ct.query_terms"); len(terms) > 0 {
		lex.QueryTerms = terms
	}
	return lex
}

func buildClassifier(lex lexicon.Lexicon) *detect.Classifier {
	return detect.NewClassifier(
		detect.NewKeywordMatcher(lex.Keywords),
		detect.NewSimilarityScorer(lex.Brands),
		viper.GetFloat64("detect.brand_threshold"),
	)
}

func buildWeights() score.Weights {
	weights := score.DefaultWeights()
	if viper.IsSet("score.mx") {
		weights.MX = viper.GetInt("score.mx")
	}
	if viper.IsSet("score.brand_max") {
		weights.BrandMax = viper.GetInt("score.brand_max")
	}
	if viper.IsSet("score.per_keyword") {
		weights.PerKeyword = viper.GetInt("score.per_keyword")
	}
	if viper.IsSet("score.keyword_cap") {
		weights.KeywordCap = viper.GetInt("score.keyword_cap")
	}
	if viper.IsSet("score.high_risk_bonus") {
		weights.HighRiskBonus = viper.GetInt("score.high_risk_bonus")
	}
	if hr := viper.GetStringSlice("score.high_risk"); len(hr) > 0 {
		weights.HighRisk = hr
	}
	return weights
}

func buildCTClient(lex lexicon.Lexicon) *ctlog.Client {
	return ctlog.New(ctlog.Config{
		BaseURL:           viper.GetString("ct.base_url"),
		Terms:             lex.QueryTerms,
		Window:            time.Duration(viper.GetInt("ct.window_hours")) * time.Hour,
		Timeout:           time.Duration(viper.GetInt("ct.timeout_secs")) * time.Second,
		RequestsPerSecond: viper.GetFloat64("ct.rate_limit"),
	}, logger)
}

func openRepository() (*json.DomainRepository, error) {
	return json.NewDomainRepository(dataDir)
}

func newRenderer() *report.Renderer {
	return report.NewRenderer(
		dataDir,
		viper.GetString("check_dir"),
		viper.GetString("site_url"),
		logger,
	)
}
