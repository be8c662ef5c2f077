// Package ctlog queries the crt.sh Certificate Transparency aggregator for
// hostnames on recently issued certificates.
package ctlog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/idna"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://crt.sh"
	defaultUserAgent = "certwatch/1.0"
	defaultWindow    = 6 * time.Hour
	defaultTimeout   = 30 * time.Second
)

// Config holds the tunable knobs of the CT client. Zero values fall back to
// sensible defaults; Terms is required.
type Config struct {
	BaseURL           string
	UserAgent         string
	Terms             []string      // search terms, queried one request each
	Window            time.Duration // ignore certificates issued before now-Window
	Timeout           time.Duration // per-request timeout
	RequestsPerSecond float64       // global rate limit across term queries
}

// Client fetches candidate domains from crt.sh. Per-term failures are
// logged and skipped; the client only fails outright when the context ends.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	terms      []string
	window     time.Duration
	limiter    *rate.Limiter
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// New builds a CT client from cfg.
func New(cfg Config, logger *zap.SugaredLogger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		terms:      cfg.Terms,
		window:     cfg.Window,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:     logger,
		now:        time.Now,
	}
}

// entry is the subset of the crt.sh JSON output the client consumes.
type entry struct {
	CommonName string `json:"common_name"`
	NameValue  string `json:"name_value"`
	NotBefore  string `json:"not_before"`
}

// FetchCandidates queries crt.sh once per configured term and returns the
// unique hostnames from certificates issued inside the recency window, in
// first-seen order.
func (c *Client) FetchCandidates(ctx context.Context) ([]string, error) {
	cutoff := c.now().UTC().Add(-c.window)

	seen := make(map[string]struct{})
	var domains []string

	for _, term := range c.terms {
		if err := c.limiter.Wait(ctx); err != nil {
			return domains, err
		}

		entries, err := c.fetchTerm(ctx, term)
		if err != nil {
			c.logger.Warnw("crt.sh query failed", "term", term, "error", err)
			continue
		}

		added := 0
		for _, e := range entries {
			if !recentEnough(e.NotBefore, cutoff) {
				continue
			}
			names := strings.Split(e.NameValue, "\n")
			names = append(names, e.CommonName)
			for _, name := range names {
				domain, ok := normalizeName(name)
				if !ok {
					continue
				}
				if _, dup := seen[domain]; dup {
					continue
				}
				seen[domain] = struct{}{}
				domains = append(domains, domain)
				added++
			}
		}
		c.logger.Infow("crt.sh term queried", "term", term, "new_domains", added)
	}

	return domains, nil
}

func (c *Client) fetchTerm(ctx context.Context, term string) ([]entry, error) {
	u := fmt.Sprintf("%s/?q=%s&output=json", c.baseURL, url.QueryEscape("%"+term+"%"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return entries, nil
}

// recentEnough reports whether a certificate's not_before timestamp falls
// inside the window. crt.sh emits the field without a zone and sometimes
// with fractional seconds; unparseable values pass through rather than
// silently dropping a candidate.
func recentEnough(notBefore string, cutoff time.Time) bool {
	if notBefore == "" {
		return true
	}

	s := strings.Replace(notBefore, " ", "T", 1)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}

	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		return true
	}
	return !t.Before(cutoff)
}

// normalizeName lower-cases and trims a certificate name and converts it to
// its IDNA ASCII form. Wildcards and names without a dot are rejected.
func normalizeName(name string) (string, bool) {
	domain := strings.ToLower(strings.TrimSpace(name))
	if domain == "" || strings.HasPrefix(domain, "*") || !strings.Contains(domain, ".") {
		return "", false
	}

	if ascii, err := idna.Lookup.ToASCII(domain); err == nil && ascii != "" {
		domain = ascii
	}

	return domain, true
}
