package radiru

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"radiru/internal/platform/metrics"
)

// Service resolves stream endpoints from the cached config document.
type Service struct {
	cache   *Cache
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewService returns a Service reading the document through cache.
// Metrics may be nil to disable metric recording (e.g. in tests).
func NewService(cache *Cache, log *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{cache: cache, log: log, metrics: m}
}

// Resolve returns the HLS endpoint for ch in loc. The document is loaded
// (and refreshed if stale) before the scan; every failure is returned to
// the caller unchanged so it can be told apart with errors.Is.
func (s *Service) Resolve(ctx context.Context, loc Location, ch Channel) (string, error) {
	url, err := s.resolve(ctx, loc, ch)
	if s.metrics != nil {
		s.metrics.IncResolution(Outcome(err))
	}
	if err != nil {
		s.log.Debug("resolve failed",
			slog.String("location", loc.String()),
			slog.String("channel", ch.String()),
			slog.String("error", err.Error()))
		return "", err
	}

	s.log.Debug("resolved",
		slog.String("location", loc.String()),
		slog.String("channel", ch.String()),
		slog.String("url", url))
	return url, nil
}

func (s *Service) resolve(ctx context.Context, loc Location, ch Channel) (string, error) {
	doc, err := s.cache.LoadOrRefresh(ctx)
	if err != nil {
		return "", err
	}
	return Resolve(bytes.NewReader(doc), loc, ch)
}

// Refresh refetches the config document regardless of its age.
func (s *Service) Refresh(ctx context.Context) error {
	_, err := s.cache.Refresh(ctx)
	return err
}

// Outcome classifies a Resolve error for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNetwork):
		return metrics.OutcomeNetwork
	case errors.Is(err, ErrCacheWrite), errors.Is(err, ErrCacheRead):
		return metrics.OutcomeCache
	case errors.Is(err, ErrMalformedDocument):
		return metrics.OutcomeMalformed
	case errors.Is(err, ErrDocumentExhausted):
		return metrics.OutcomeExhausted
	case errors.Is(err, ErrEmptyEndpoint):
		return metrics.OutcomeEmpty
	case errors.Is(err, ErrUnknownLocation), errors.Is(err, ErrUnknownChannel):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeOther
	}
}
