// Package json provides file-backed JSON implementations of the domain
// repositories.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"certwatch/internal/domain/watch"
	"certwatch/internal/score"
	sharedErrors "certwatch/internal/shared/errors"
)

// recordDTO is the data transfer object for JSON serialization. Brand
// fields stay pointers so an absent match serializes as null, not "".
type recordDTO struct {
	Domain          string   `json:"domain"`
	MX              bool     `json:"mx"`
	HasIP           bool     `json:"has_ip"`
	Keywords        []string `json:"keywords"`
	BrandMatch      *string  `json:"brand_match"`
	BrandSimilarity *float64 `json:"brand_similarity"`
	Date            string   `json:"date"`
	ThreatScore     int      `json:"threat_score"`
	ThreatLevel     string   `json:"threat_level"`
}

// DomainRepository implements watch.Repository using a single JSON file.
type DomainRepository struct {
	filePath string
	mu       sync.RWMutex
}

// NewDomainRepository creates a JSON-backed repository under dataDir,
// initializing domains.json if it does not exist yet.
func NewDomainRepository(dataDir string) (*DomainRepository, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &DomainRepository{
		filePath: filepath.Join(dataDir, "domains.json"),
	}

	if _, err := os.Stat(repo.filePath); os.IsNotExist(err) {
		if err := repo.saveToFile([]recordDTO{}); err != nil {
			return nil, fmt.Errorf("failed to initialize domains file: %w", err)
		}
	}

	return repo, nil
}

// Append adds a record to the end of the history.
func (r *DomainRepository) Append(ctx context.Context, rec watch.Record) error {
	if rec.Domain == "" {
		return sharedErrors.ErrEmptyDomain
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadFromFile()
	if err != nil {
		return fmt.Errorf("failed to load domains: %w", err)
	}

	for _, dto := range records {
		if dto.Domain == rec.Domain {
			return sharedErrors.ErrDuplicateDomain
		}
	}

	records = append(records, toDTO(rec))

	if err := r.saveToFile(records); err != nil {
		return fmt.Errorf("failed to save domains: %w", err)
	}

	return nil
}

// All returns the full history in insertion order.
func (r *DomainRepository) All(ctx context.Context) ([]watch.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dtos, err := r.loadFromFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load domains: %w", err)
	}

	records := make([]watch.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := fromDTO(dto)
		if err != nil {
			return nil, fmt.Errorf("failed to convert record %s: %w", dto.Domain, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Domains returns a snapshot of the tracked domain strings.
func (r *DomainRepository) Domains(ctx context.Context) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dtos, err := r.loadFromFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load domains: %w", err)
	}

	domains := make(map[string]struct{}, len(dtos))
	for _, dto := range dtos {
		domains[dto.Domain] = struct{}{}
	}

	return domains, nil
}

// Trim drops the oldest records until at most keep remain.
func (r *DomainRepository) Trim(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadFromFile()
	if err != nil {
		return 0, fmt.Errorf("failed to load domains: %w", err)
	}

	if len(records) <= keep {
		return 0, nil
	}

	dropped := len(records) - keep
	records = records[dropped:]

	if err := r.saveToFile(records); err != nil {
		return 0, fmt.Errorf("failed to save domains: %w", err)
	}

	return dropped, nil
}

// Helper methods

func (r *DomainRepository) loadFromFile() ([]recordDTO, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []recordDTO{}, nil
		}
		return nil, err
	}

	var records []recordDTO
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *DomainRepository) saveToFile(records []recordDTO) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.filePath, data, 0o644)
}

func toDTO(rec watch.Record) recordDTO {
	dto := recordDTO{
		Domain:          rec.Domain,
		MX:              rec.MX,
		HasIP:           rec.HasIP,
		Keywords:        rec.Keywords,
		BrandMatch:      rec.BrandMatch,
		BrandSimilarity: rec.BrandSimilarity,
		ThreatScore:     rec.ThreatScore,
		ThreatLevel:     string(rec.ThreatLevel),
	}

	// Keep keywords as [] rather than null in the persisted form.
	if dto.Keywords == nil {
		dto.Keywords = []string{}
	}
	if !rec.Date.IsZero() {
		dto.Date = rec.Date.UTC().Format(time.RFC3339)
	}

	return dto
}

func fromDTO(dto recordDTO) (watch.Record, error) {
	rec := watch.Record{
		Domain:          dto.Domain,
		MX:              dto.MX,
		HasIP:           dto.HasIP,
		Keywords:        dto.Keywords,
		BrandMatch:      dto.BrandMatch,
		BrandSimilarity: dto.BrandSimilarity,
		ThreatScore:     dto.ThreatScore,
		ThreatLevel:     score.Level(dto.ThreatLevel),
	}

	if dto.Date != "" {
		date, err := time.Parse(time.RFC3339, dto.Date)
		if err != nil {
			return watch.Record{}, fmt.Errorf("failed to parse date: %w", err)
		}
		rec.Date = date
	}

	return rec, nil
}
