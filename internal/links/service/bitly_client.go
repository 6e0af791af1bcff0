package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/linkforge-app/linkforge-backend/internal/links/domain"
)

const defaultBitlyTimeout = 30 * time.Second

// BitlyClient talks to the bitly shortening API. The credential is passed per
// call so the client itself carries no mutable state.
type BitlyClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewBitlyClient creates a client for the given API base URL. Bitly's free
// tier is aggressively rate limited, so outbound calls are throttled to one
// per second with a small burst.
func NewBitlyClient(baseURL string, timeout time.Duration) *BitlyClient {
	if timeout <= 0 {
		timeout = defaultBitlyTimeout
	}
	return &BitlyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(1), 4),
	}
}

type shortenRequest struct {
	LongURL string `json:"long_url"`
}

type shortenResponse struct {
	Link        string `json:"link"`
	Description string `json:"description"`
}

// Shorten submits the long URL and returns the provider-issued short link.
// Exactly one attempt is made; failures are not retried here.
func (c *BitlyClient) Shorten(ctx context.Context, apiKey, longURL string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", domain.ErrMissingCredential
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}

	jsonData, err := json.Marshal(shortenRequest{LongURL: longURL})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}

	url := fmt.Sprintf("%s/v4/shorten", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}

	var parsed shortenResponse
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		desc := parsed.Description
		if desc == "" {
			desc = "Failed to shorten URL"
		}
		return "", fmt.Errorf("%w: %s", domain.ErrRemoteService, desc)
	}

	if parsed.Link == "" {
		return "", fmt.Errorf("%w: provider response missing link field", domain.ErrRemoteService)
	}

	return parsed.Link, nil
}
