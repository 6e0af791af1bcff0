package domain

import (
	"fmt"
	"strings"
	"time"
)

// Shortener variants a project can select. The set is closed; anything else is
// rejected at the store boundary.
const (
	ShortenerNone   = "none"
	ShortenerBitly  = "bitly"
	ShortenerCustom = "custom"
)

// Param is one custom tracking parameter attached to a project. Order matters:
// later params overwrite earlier ones on key collision during composition.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Project is a brand/affiliate campaign carrying default tracking parameters.
// It is storage-agnostic and shared across repository, service and HTTP layers.
// Serialized field names match the dashboard's storage format.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	UTMSource    string    `json:"utmSource"`
	UTMMedium    string    `json:"utmMedium"`
	UTMCampaign  string    `json:"utmCampaign"`
	UTMTerm      string    `json:"utmTerm"`
	UTMContent   string    `json:"utmContent"`
	CustomParams []Param   `json:"customParams"`
	Shortener    string    `json:"shortener"`
	CustomDomain string    `json:"customDomain"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Settings holds the single process-wide shortening credential. Its lifecycle
// is independent of any project.
type Settings struct {
	BitlyAPIKey string `json:"bitlyApiKey"`
}

// Normalize trims display fields, defaults the shortener variant and drops
// custom params without a key, mirroring the dashboard's pre-save filtering.
func (p *Project) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Shortener == "" {
		p.Shortener = ShortenerNone
	}

	kept := make([]Param, 0, len(p.CustomParams))
	for _, cp := range p.CustomParams {
		if strings.TrimSpace(cp.Key) == "" {
			continue
		}
		kept = append(kept, cp)
	}
	p.CustomParams = kept
}

// Validate checks the creation-time invariants. Call after Normalize.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if p.UTMSource == "" {
		return fmt.Errorf("%w: utmSource is required", ErrInvalidProject)
	}
	if p.UTMMedium == "" {
		return fmt.Errorf("%w: utmMedium is required", ErrInvalidProject)
	}
	if p.UTMCampaign == "" {
		return fmt.Errorf("%w: utmCampaign is required", ErrInvalidProject)
	}

	switch p.Shortener {
	case ShortenerNone, ShortenerBitly:
	case ShortenerCustom:
		if strings.TrimSpace(p.CustomDomain) == "" {
			return fmt.Errorf("%w: customDomain is required for the custom shortener", ErrInvalidProject)
		}
	default:
		return fmt.Errorf("%w: unknown shortener %q", ErrInvalidProject, p.Shortener)
	}

	return nil
}

// ApplyUpdate replaces every field of p with the incoming values while
// preserving the identity fields, which are immutable after creation.
func (p *Project) ApplyUpdate(in Project) {
	id, createdAt := p.ID, p.CreatedAt
	*p = in
	p.ID = id
	p.CreatedAt = createdAt
}
