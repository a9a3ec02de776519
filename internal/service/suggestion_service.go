// Package service provides application services that sit between the
// HTTP handlers and the lower-level stores and providers.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/platform/logger"
	"github.com/phrazzld/taskai/internal/suggestion"
)

// suggestionTimeout bounds a single provider call so a slow upstream
// can never stall the request that asked for a suggestion.
const suggestionTimeout = 15 * time.Second

// SuggestionService wraps a suggestion.Suggester with the degradation
// policy the application requires: provider failures never propagate as
// hard errors on the priority path, they fall back to a caller-supplied
// default instead.
type SuggestionService struct {
	suggester suggestion.Suggester // nil when no provider is configured
	logger    *slog.Logger
}

// NewSuggestionService creates a SuggestionService. A nil suggester is
// valid and means every priority request resolves to its fallback and
// every breakdown request fails with suggestion.ErrUnavailable.
func NewSuggestionService(suggester suggestion.Suggester, log *slog.Logger) *SuggestionService {
	if log == nil {
		log = slog.Default()
	}

	return &SuggestionService{
		suggester: suggester,
		logger:    log.With(slog.String("component", "suggestion_service")),
	}
}

// RecommendPriority asks the provider for a priority recommendation and
// falls back to the given default when the provider is missing, fails,
// times out, or returns something unusable. The second return value
// reports whether the fallback was used.
func (s *SuggestionService) RecommendPriority(
	ctx context.Context,
	title, description string,
	fallback domain.TaskPriority,
) (domain.TaskPriority, bool) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !fallback.IsValid() {
		fallback = domain.TaskPriorityMedium
	}

	if s.suggester == nil {
		log.Debug("no suggestion provider configured, using fallback priority",
			slog.String("fallback", string(fallback)))
		return fallback, true
	}

	callCtx, cancel := context.WithTimeout(ctx, suggestionTimeout)
	defer cancel()

	priority, err := s.suggester.SuggestPriority(callCtx, title, description)
	if err != nil {
		log.Warn("priority suggestion failed, using fallback",
			slog.String("fallback", string(fallback)),
			slog.String("error", err.Error()))
		return fallback, true
	}

	if !priority.IsValid() {
		log.Warn("priority suggestion returned value outside the closed set, using fallback",
			slog.String("got", string(priority)),
			slog.String("fallback", string(fallback)))
		return fallback, true
	}

	return priority, false
}

// BreakdownTask asks the provider for a structured task breakdown.
// Unlike the priority path there is no meaningful fallback value, so
// failures surface as errors for the handler to present as a
// non-blocking notice.
func (s *SuggestionService) BreakdownTask(
	ctx context.Context,
	title, description, followUp string,
) (*suggestion.Breakdown, error) {
	if s.suggester == nil {
		return nil, suggestion.ErrUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, suggestionTimeout)
	defer cancel()

	breakdown, err := s.suggester.BreakdownTask(callCtx, title, description, followUp)
	if err != nil {
		return nil, err
	}

	breakdown.Clamp()
	return breakdown, nil
}
