package domain

import (
	"errors"

	projects "github.com/linkforge-app/linkforge-backend/internal/projects/domain"
)

// ErrorKind values carried in a CompositionResult. The first two are fatal to
// the composition; the last two leave the long URL intact.
const (
	KindEmptyInput        = "empty_input"
	KindInvalidURL        = "invalid_url"
	KindMissingCredential = "missing_credential"
	KindRemoteService     = "remote_service"
)

var (
	ErrEmptyInput        = errors.New("base URL is empty")
	ErrInvalidURL        = errors.New("base URL is not a well-formed absolute URL")
	ErrMissingCredential = errors.New("bitly API key is not configured")
	ErrRemoteService     = errors.New("shortening service request failed")
)

// CompositionResult is the single value a composition produces. Shortening
// failures are reported here next to the long URL, never instead of it.
type CompositionResult struct {
	LongURL     string `json:"longUrl,omitempty"`
	ShortURL    string `json:"shortUrl,omitempty"`
	ErrorKind   string `json:"errorKind,omitempty"`
	ErrorDetail string `json:"errorDetail,omitempty"`
	Notice      string `json:"notice,omitempty"`
}

// Entry is one parameter row in an interactive editing session. Default
// entries originate from a project's UTM fields: their keys are locked and
// they cannot be removed, only given a new value. The distinction is enforced
// by construction; there is no way to rename a default entry.
type Entry struct {
	key       string
	value     string
	isDefault bool
}

func DefaultEntry(key, value string) Entry {
	return Entry{key: key, value: value, isDefault: true}
}

func CustomEntry(key, value string) Entry {
	return Entry{key: key, value: value}
}

func (e Entry) Key() string     { return e.key }
func (e Entry) Value() string   { return e.value }
func (e Entry) IsDefault() bool { return e.isDefault }

// WithValue returns a copy carrying the new value. Allowed on every entry.
func (e Entry) WithValue(v string) Entry {
	e.value = v
	return e
}

// WithKey returns a copy carrying the new key. Refused for default entries.
func (e Entry) WithKey(k string) (Entry, bool) {
	if e.isDefault {
		return e, false
	}
	e.key = k
	return e, true
}

// SessionParams expands a project into the ordered entry list an editing
// session starts from: the five UTM fields (present even when blank, so the
// form can offer them), then the project's custom params.
func SessionParams(p projects.Project) []Entry {
	entries := []Entry{
		DefaultEntry("utm_source", p.UTMSource),
		DefaultEntry("utm_medium", p.UTMMedium),
		DefaultEntry("utm_campaign", p.UTMCampaign),
		DefaultEntry("utm_term", p.UTMTerm),
		DefaultEntry("utm_content", p.UTMContent),
	}
	for _, cp := range p.CustomParams {
		entries = append(entries, CustomEntry(cp.Key, cp.Value))
	}
	return entries
}
