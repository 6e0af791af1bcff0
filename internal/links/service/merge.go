package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/linkforge-app/linkforge-backend/internal/links/domain"
	projects "github.com/linkforge-app/linkforge-backend/internal/projects/domain"
)

// Merge builds the long tracking URL for a base URL and a project. The
// starting mapping is the base URL's own query string; the project's UTM
// fields, its custom params and finally the caller's overrides are applied on
// top, later entries winning on key collision. An entry with an empty key or
// value is skipped entirely, so a blank value can never erase a parameter the
// base URL already carries. Everything outside the query string passes through
// unchanged.
//
// Merge is a pure function of its inputs.
func Merge(baseURL string, p projects.Project, overrides []domain.Entry) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", domain.ErrInvalidURL
	}

	q := parseQuery(u.RawQuery)

	for _, e := range domain.SessionParams(p) {
		q.apply(e.Key(), e.Value())
	}
	for _, e := range overrides {
		q.apply(e.Key(), e.Value())
	}

	u.RawQuery = q.encode()
	return u.String(), nil
}

// orderedQuery keeps parameters in first-occurrence order, the way browsers'
// URLSearchParams does, so merging never reshuffles the base URL's query.
type orderedQuery struct {
	keys []string
	vals map[string]string
}

func parseQuery(raw string) *orderedQuery {
	q := &orderedQuery{vals: make(map[string]string)}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			key = k
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			val = v
		}
		if key == "" {
			continue
		}
		// Duplicate keys in the input collapse to the last value.
		q.put(key, val)
	}
	return q
}

// apply sets a candidate parameter, skipping entries whose key or value is
// empty: emptiness means "omit", not "clear".
func (q *orderedQuery) apply(key, value string) {
	if key == "" || value == "" {
		return
	}
	q.put(key, value)
}

func (q *orderedQuery) put(key, value string) {
	if _, ok := q.vals[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.vals[key] = value
}

func (q *orderedQuery) encode() string {
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.vals[k]))
	}
	return b.String()
}
