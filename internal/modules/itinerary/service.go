// README: Itinerary generator: LLM provider under a timeout, deterministic fallback otherwise.
package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"journeo/internal/ai"
	"journeo/internal/types"
)

var errNoProvider = errors.New("itinerary: no ai provider configured")

type Service struct {
	provider ai.LLMProvider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewService accepts a nil provider; every call then uses the fallback.
func NewService(provider ai.LLMProvider, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, timeout: timeout, logger: logger}
}

// Generate never fails: any provider problem yields the fallback itinerary.
func (s *Service) Generate(ctx context.Context, r Request) Itinerary {
	text, err := s.generate(ctx, r)
	if err != nil {
		s.logger.Warn("itinerary fallback", "destination", r.Destination, "error", err)
		return Itinerary{Text: Fallback(r), Source: types.SourceDegraded}
	}
	return Itinerary{Text: text, Source: types.SourceLive}
}

func (s *Service) generate(ctx context.Context, r Request) (string, error) {
	if s.provider == nil {
		return "", errNoProvider
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	text, err := s.provider.GenerateItinerary(ctx, BuildPrompt(r))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ai.ErrEmptyResponse
	}
	s.logger.Debug("itinerary generated", "provider", s.provider.Name(), "duration_ms", time.Since(start).Milliseconds())
	return text, nil
}
