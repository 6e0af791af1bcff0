package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkforge-app/linkforge-backend/internal/links/domain"
	projects "github.com/linkforge-app/linkforge-backend/internal/projects/domain"
)

type stubSettings struct {
	settings projects.Settings
	err      error
}

func (s stubSettings) LoadSettings(context.Context) (projects.Settings, error) {
	return s.settings, s.err
}

func newTestComposer(settings stubSettings, bitlyBase string) *Composer {
	return NewComposer(settings, NewBitlyClient(bitlyBase, 0), zap.NewNop())
}

func TestCompose_EmptyInput(t *testing.T) {
	composer := newTestComposer(stubSettings{}, "http://127.0.0.1:1")

	res := composer.Compose(context.Background(), "   ", newsletterProject(), nil)

	assert.Equal(t, domain.KindEmptyInput, res.ErrorKind)
	assert.Empty(t, res.LongURL)
	assert.Empty(t, res.ShortURL)
}

func TestCompose_InvalidURL(t *testing.T) {
	composer := newTestComposer(stubSettings{}, "http://127.0.0.1:1")

	res := composer.Compose(context.Background(), "not-a-url", newsletterProject(), nil)

	assert.Equal(t, domain.KindInvalidURL, res.ErrorKind)
	assert.Empty(t, res.LongURL)
}

func TestCompose_NoShortener(t *testing.T) {
	composer := newTestComposer(stubSettings{}, "http://127.0.0.1:1")

	p := newsletterProject()
	p.Shortener = projects.ShortenerNone

	res := composer.Compose(context.Background(), "https://shop.com/item?ref=1", p, nil)

	assert.Empty(t, res.ErrorKind)
	assert.Equal(t, "https://shop.com/item?ref=1&utm_source=news&utm_medium=email&utm_campaign=sale&aff=42", res.LongURL)
	assert.Empty(t, res.ShortURL)
	assert.Empty(t, res.Notice)
}

func TestCompose_CustomShortener(t *testing.T) {
	composer := newTestComposer(stubSettings{}, "http://127.0.0.1:1")

	p := newsletterProject()
	p.Shortener = projects.ShortenerCustom
	p.CustomDomain = "go.my"

	res := composer.Compose(context.Background(), "https://shop.com/item", p, nil)

	assert.NotEmpty(t, res.LongURL)
	assert.Regexp(t, `^https://go\.my/.{6}$`, res.ShortURL)
	assert.Equal(t, MockNotice, res.Notice)
	assert.Empty(t, res.ErrorKind)
}

func TestCompose_BitlyMissingCredential(t *testing.T) {
	// No credential configured: the long URL must survive the failure.
	composer := newTestComposer(stubSettings{}, "http://127.0.0.1:1")

	p := newsletterProject()
	p.Shortener = projects.ShortenerBitly

	res := composer.Compose(context.Background(), "https://shop.com/item", p, nil)

	assert.Equal(t, domain.KindMissingCredential, res.ErrorKind)
	assert.NotEmpty(t, res.LongURL)
	assert.Empty(t, res.ShortURL)
}

func TestCompose_BitlySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"link": "https://bit.ly/xyz"}`))
	}))
	defer server.Close()

	composer := newTestComposer(stubSettings{settings: projects.Settings{BitlyAPIKey: "key"}}, server.URL)

	p := newsletterProject()
	p.Shortener = projects.ShortenerBitly

	res := composer.Compose(context.Background(), "https://shop.com/item", p, nil)

	require.Empty(t, res.ErrorKind)
	assert.Equal(t, "https://bit.ly/xyz", res.ShortURL)
	assert.NotEmpty(t, res.LongURL)
}

func TestCompose_BitlyRemoteFailureKeepsLongURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"description": "MONTHLY_LIMIT_EXCEEDED"}`))
	}))
	defer server.Close()

	composer := newTestComposer(stubSettings{settings: projects.Settings{BitlyAPIKey: "key"}}, server.URL)

	p := newsletterProject()
	p.Shortener = projects.ShortenerBitly

	res := composer.Compose(context.Background(), "https://shop.com/item", p, nil)

	assert.Equal(t, domain.KindRemoteService, res.ErrorKind)
	assert.Contains(t, res.ErrorDetail, "MONTHLY_LIMIT_EXCEEDED")
	assert.NotEmpty(t, res.LongURL)
	assert.Empty(t, res.ShortURL)
}

func TestCompose_SettingsLoadFailure(t *testing.T) {
	composer := newTestComposer(stubSettings{err: errors.New("store unavailable")}, "http://127.0.0.1:1")

	p := newsletterProject()
	p.Shortener = projects.ShortenerBitly

	res := composer.Compose(context.Background(), "https://shop.com/item", p, nil)

	assert.Equal(t, domain.KindRemoteService, res.ErrorKind)
	assert.NotEmpty(t, res.LongURL)
}
