// Package watch defines the tracked-domain record and its repository
// contract.
package watch

import (
	"time"

	"certwatch/internal/score"
)

// Record is one tracked suspicious domain. A record is immutable once
// created: the score reflects the evidence gathered at detection time and
// is never recomputed, even if lexicons or weights change later.
type Record struct {
	Domain          string      `json:"domain"`
	MX              bool        `json:"mx"`
	HasIP           bool        `json:"has_ip"`
	Keywords        []string    `json:"keywords"`
	BrandMatch      *string     `json:"brand_match"`
	BrandSimilarity *float64    `json:"brand_similarity"`
	Date            time.Time   `json:"date"`
	ThreatScore     int         `json:"threat_score"`
	ThreatLevel     score.Level `json:"threat_level"`
}
