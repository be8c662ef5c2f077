// Package ingest orchestrates one update run: dedup against history,
// classification, DNS enrichment, scoring and retention.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"certwatch/internal/detect"
	"certwatch/internal/domain/watch"
	"certwatch/internal/score"
)

// DefaultRetention is the hard cap on retained history records.
const DefaultRetention = 1000

// DNSOracle answers boolean presence questions about a domain. Lookup
// failures must surface as false, never as errors.
type DNSOracle interface {
	HasMX(ctx context.Context, domain string) bool
	HasA(ctx context.Context, domain string) bool
}

// Summary reports what one ingestion run did.
type Summary struct {
	Candidates int // unique candidates processed
	Skipped    int // already tracked, left untouched
	Clean      int // classified not-suspicious
	Added      int // new records appended
	Dropped    int // records trimmed by retention
}

// Service runs the ingestion pipeline. Each domain is classified and scored
// independently; no failure on one domain aborts the rest of the batch.
type Service struct {
	classifier *detect.Classifier
	weights    score.Weights
	oracle     DNSOracle
	repo       watch.Repository
	logger     *zap.SugaredLogger
	retention  int
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithRetention overrides the history cap.
func WithRetention(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.retention = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService wires the pipeline.
func NewService(classifier *detect.Classifier, weights score.Weights, oracle DNSOracle, repo watch.Repository, logger *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		weights:    weights,
		oracle:     oracle,
		repo:       repo,
		logger:     logger,
		retention:  DefaultRetention,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest classifies every not-yet-seen candidate, appends the suspicious
// ones to the history in input order, and enforces the retention cap.
// Already-tracked domains are skipped unconditionally: the first
// classification wins and is never re-scored or re-dated.
func (s *Service) Ingest(ctx context.Context, candidates []string) (Summary, error) {
	// Snapshot of the seen set taken once, before any of this batch's
	// appends, to keep dedup consistent with sequential processing.
	seen, err := s.repo.Domains(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load existing domains: %w", err)
	}

	var sum Summary
	for _, domain := range dedupe(candidates) {
		sum.Candidates++

		if _, tracked := seen[domain]; tracked {
			sum.Skipped++
			continue
		}

		verdict := s.classifier.Classify(domain)
		if !verdict.Suspicious {
			sum.Clean++
			s.logger.Debugw("clean domain", "domain", domain)
			continue
		}

		rec := s.buildRecord(ctx, verdict)
		if err := s.repo.Append(ctx, rec); err != nil {
			s.logger.Errorw("failed to append record", "domain", domain, "error", err)
			continue
		}
		seen[domain] = struct{}{}
		sum.Added++

		s.logger.Infow("suspicious domain tracked",
			"domain", rec.Domain,
			"score", rec.ThreatScore,
			"level", rec.ThreatLevel,
			"keywords", rec.Keywords,
		)
	}

	dropped, err := s.repo.Trim(ctx, s.retention)
	if err != nil {
		return sum, fmt.Errorf("trim history: %w", err)
	}
	sum.Dropped = dropped

	return sum, nil
}

func (s *Service) buildRecord(ctx context.Context, verdict detect.Verdict) watch.Record {
	rec := watch.Record{
		Domain:   verdict.Domain,
		MX:       s.oracle.HasMX(ctx, verdict.Domain),
		HasIP:    s.oracle.HasA(ctx, verdict.Domain),
		Keywords: verdict.Keywords,
		Date:     s.now().UTC(),
	}

	input := score.Input{
		MX:       rec.MX,
		Keywords: rec.Keywords,
	}
	if verdict.Brand != nil {
		brand := verdict.Brand.Brand
		similarity := verdict.Brand.Similarity
		rec.BrandMatch = &brand
		rec.BrandSimilarity = &similarity
		input.BrandSimilarity = similarity
	}

	rec.ThreatScore = s.weights.Score(input)
	rec.ThreatLevel = score.LevelFor(rec.ThreatScore)
	return rec
}

// dedupe removes repeated candidates while preserving first-seen order.
func dedupe(domains []string) []string {
	seen := make(map[string]struct{}, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
