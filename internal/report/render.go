// Package report renders the public artifacts: the JSON feed, per-domain
// warning pages and the aggregate summary report.
package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"

	"certwatch/internal/domain/watch"
	"certwatch/internal/score"
	sharedErrors "certwatch/internal/shared/errors"
)

const (
	feedFilename = "feed.json"
	feedSize     = 50
)

//go:embed templates/domain.html templates/summary.html templates/summary.md
var templateFS embed.FS

var levelColors = map[score.Level]string{
	score.LevelCritical: "#ff1744",
	score.LevelHigh:     "#ff4757",
	score.LevelMedium:   "#ffa502",
	score.LevelLow:      "#00ff88",
}

var templateFuncs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
}

var (
	domainPageTemplate = template.Must(
		template.New("domain.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/domain.html"),
	)
	summaryHTMLTemplate = template.Must(
		template.New("summary.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/summary.html"),
	)
	summaryMarkdownTemplate = texttemplate.Must(
		texttemplate.New("summary.md").Funcs(texttemplate.FuncMap(templateFuncs)).ParseFS(templateFS, "templates/summary.md"),
	)
)

// Renderer writes feed and page artifacts under dataDir and checkDir.
type Renderer struct {
	dataDir  string
	checkDir string
	siteURL  string
	logger   *zap.SugaredLogger
}

// NewRenderer builds a renderer. siteURL is the public base used for feed
// links.
func NewRenderer(dataDir, checkDir, siteURL string, logger *zap.SugaredLogger) *Renderer {
	return &Renderer{
		dataDir:  dataDir,
		checkDir: checkDir,
		siteURL:  strings.TrimRight(siteURL, "/"),
		logger:   logger,
	}
}

type feedItem struct {
	Domain          string      `json:"domain"`
	Link            string      `json:"link"`
	Date            string      `json:"date"`
	MX              bool        `json:"mx"`
	Keywords        []string    `json:"keywords"`
	BrandMatch      *string     `json:"brand_match"`
	BrandSimilarity *float64    `json:"brand_similarity"`
	ThreatScore     int         `json:"threat_score"`
	ThreatLevel     score.Level `json:"threat_level"`
}

// WriteFeed emits the newest-first feed of the latest records to feed.json.
func (r *Renderer) WriteFeed(records []watch.Record) error {
	start := 0
	if len(records) > feedSize {
		start = len(records) - feedSize
	}
	latest := records[start:]

	items := make([]feedItem, 0, len(latest))
	for i := len(latest) - 1; i >= 0; i-- {
		rec := latest[i]
		keywords := rec.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		items = append(items, feedItem{
			Domain:          rec.Domain,
			Link:            fmt.Sprintf("%s/check/%s.html", r.siteURL, url.PathEscape(rec.Domain)),
			Date:            rec.Date.UTC().Format(time.RFC3339),
			MX:              rec.MX,
			Keywords:        keywords,
			BrandMatch:      rec.BrandMatch,
			BrandSimilarity: rec.BrandSimilarity,
			ThreatScore:     rec.ThreatScore,
			ThreatLevel:     rec.ThreatLevel,
		})
	}

	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(r.dataDir, feedFilename), data, 0o644)
}

// pageData is the template context of one warning page.
type pageData struct {
	Record        watch.Record
	LevelColor    string
	Date          string
	SimilarityPct string
}

// WritePage renders the warning page for one record.
func (r *Renderer) WritePage(rec watch.Record) error {
	if err := os.MkdirAll(r.checkDir, 0o755); err != nil {
		return fmt.Errorf("failed to create check directory: %w", err)
	}

	color, ok := levelColors[rec.ThreatLevel]
	if !ok {
		color = levelColors[score.LevelMedium]
	}

	path := filepath.Join(r.checkDir, sanitizeFilename(rec.Domain)+".html")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data := pageData{
		Record:     rec,
		LevelColor: color,
		Date:       rec.Date.UTC().Format(time.RFC3339),
	}
	if rec.BrandSimilarity != nil {
		data.SimilarityPct = fmt.Sprintf("%.0f%%", *rec.BrandSimilarity*100)
	}

	return domainPageTemplate.Execute(f, data)
}

// WritePages renders pages for all records, logging and skipping failures
// so one bad record never blocks the rest. It returns how many pages were
// written.
func (r *Renderer) WritePages(records []watch.Record) int {
	written := 0
	for _, rec := range records {
		if err := r.WritePage(rec); err != nil {
			r.logger.Errorw("failed to write warning page", "domain", rec.Domain, "error", err)
			continue
		}
		written++
	}
	return written
}

// SummaryData aggregates the history for the summary report.
type SummaryData struct {
	GeneratedAt string
	Total       int
	WithMX      int
	Critical    int
	High        int
	Medium      int
	Low         int
	Top         []watch.Record // highest scores first
}

// BuildSummary aggregates records into report data, keeping the topN
// highest-scored domains (newest first among equal scores).
func BuildSummary(records []watch.Record, topN int) SummaryData {
	data := SummaryData{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Total:       len(records),
	}

	for _, rec := range records {
		if rec.MX {
			data.WithMX++
		}
		switch rec.ThreatLevel {
		case score.LevelCritical:
			data.Critical++
		case score.LevelHigh:
			data.High++
		case score.LevelMedium:
			data.Medium++
		default:
			data.Low++
		}
	}

	top := make([]watch.Record, len(records))
	copy(top, records)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].ThreatScore != top[j].ThreatScore {
			return top[i].ThreatScore > top[j].ThreatScore
		}
		return top[i].Date.After(top[j].Date)
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	data.Top = top

	return data
}

// RenderSummary writes the summary report in the requested format
// ("html" or "markdown") to w.
func RenderSummary(w io.Writer, format string, data SummaryData) error {
	switch format {
	case "html":
		return summaryHTMLTemplate.Execute(w, data)
	case "markdown", "md":
		return summaryMarkdownTemplate.Execute(w, data)
	default:
		return fmt.Errorf("%w: %s", sharedErrors.ErrUnknownFormat, format)
	}
}

// sanitizeFilename keeps domain-derived page names inside the check
// directory.
func sanitizeFilename(domain string) string {
	s := strings.ReplaceAll(domain, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return strings.ReplaceAll(s, "..", "_")
}
