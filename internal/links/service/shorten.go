package service

import (
	"encoding/base64"
	"fmt"
)

const mockFingerprintLen = 6

// MockNotice is attached to results produced by the local mock so callers know
// the short link is a placeholder, not a real shortening service.
const MockNotice = "mock short URL; integrate a real shortening service for production links"

// MockShorten builds a deterministic offline short URL under the project's
// custom domain. The fingerprint is a truncated base64 encoding of the long
// URL: stable for a given input, but not collision-resistant and not
// reversible. It must not be treated as an identifier.
func MockShorten(longURL, domain string) string {
	fp := base64.StdEncoding.EncodeToString([]byte(longURL))
	if len(fp) > mockFingerprintLen {
		fp = fp[:mockFingerprintLen]
	}
	return fmt.Sprintf("https://%s/%s", domain, fp)
}
