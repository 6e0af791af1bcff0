package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/linkforge-app/linkforge-backend/internal/links/domain"
	projects "github.com/linkforge-app/linkforge-backend/internal/projects/domain"
)

// SettingsSource yields the global shortening credential. Satisfied by the
// projects repository.
type SettingsSource interface {
	LoadSettings(ctx context.Context) (projects.Settings, error)
}

// Composer validates input, runs the parameter merge and dispatches to the
// shortener variant the project selects. It never writes to the store.
type Composer struct {
	settings SettingsSource
	bitly    *BitlyClient
	logger   *zap.Logger
}

func NewComposer(settings SettingsSource, bitly *BitlyClient, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		settings: settings,
		bitly:    bitly,
		logger:   logger,
	}
}

// Compose produces the tracking URL for a base URL and a project snapshot.
// Merge failures abort the composition; shortening failures do not — the long
// URL is the primary guarantee and is always returned once the merge succeeds,
// with the shortener's error kind attached next to it.
func (s *Composer) Compose(ctx context.Context, baseURL string, p projects.Project, overrides []domain.Entry) domain.CompositionResult {
	if strings.TrimSpace(baseURL) == "" {
		return domain.CompositionResult{
			ErrorKind:   domain.KindEmptyInput,
			ErrorDetail: domain.ErrEmptyInput.Error(),
		}
	}

	longURL, err := Merge(baseURL, p, overrides)
	if err != nil {
		return domain.CompositionResult{
			ErrorKind:   domain.KindInvalidURL,
			ErrorDetail: err.Error(),
		}
	}

	res := domain.CompositionResult{LongURL: longURL}

	switch p.Shortener {
	case projects.ShortenerBitly:
		short, err := s.shortenWithBitly(ctx, longURL)
		if err != nil {
			res.ErrorKind, res.ErrorDetail = classifyShortenErr(err)
			s.logger.Warn("shortening failed",
				zap.String("project_id", p.ID),
				zap.String("kind", res.ErrorKind),
				zap.Error(err))
			return res
		}
		res.ShortURL = short
	case projects.ShortenerCustom:
		res.ShortURL = MockShorten(longURL, p.CustomDomain)
		res.Notice = MockNotice
	}

	return res
}

func (s *Composer) shortenWithBitly(ctx context.Context, longURL string) (string, error) {
	settings, err := s.settings.LoadSettings(ctx)
	if err != nil {
		return "", err
	}
	return s.bitly.Shorten(ctx, settings.BitlyAPIKey, longURL)
}

func classifyShortenErr(err error) (kind, detail string) {
	if errors.Is(err, domain.ErrMissingCredential) {
		return domain.KindMissingCredential, err.Error()
	}
	return domain.KindRemoteService, err.Error()
}
