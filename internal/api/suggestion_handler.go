package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskai/internal/api/shared"
	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/platform/logger"
	"github.com/phrazzld/taskai/internal/redact"
	"github.com/phrazzld/taskai/internal/service"
)

// SuggestionHandler handles AI suggestion HTTP requests.
type SuggestionHandler struct {
	suggestions *service.SuggestionService
	logger      *slog.Logger
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestions *service.SuggestionService, log *slog.Logger) *SuggestionHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SuggestionHandler")
	}

	return &SuggestionHandler{
		suggestions: suggestions,
		logger:      log.With(slog.String("component", "suggestion_handler")),
	}
}

// SuggestPriority handles POST /api/suggestions/priority requests.
// Provider failures degrade to a medium recommendation rather than an
// error, so the endpoint always answers with a usable priority.
func (h *SuggestionHandler) SuggestPriority(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := getUserIDFromContext(r); !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req SuggestPriorityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, err)
		return
	}

	priority, degraded := h.suggestions.RecommendPriority(
		r.Context(), req.Title, req.Description, domain.TaskPriorityMedium)

	shared.RespondWithJSON(w, r, http.StatusOK, SuggestPriorityResponse{
		Priority: string(priority),
		Degraded: degraded,
	})
}

// Breakdown handles POST /api/suggestions/breakdown requests.
func (h *SuggestionHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := getUserIDFromContext(r); !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req BreakdownRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, err)
		return
	}

	breakdown, err := h.suggestions.BreakdownTask(r.Context(), req.Title, req.Description, req.FollowUp)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate task breakdown")
		return
	}

	log.Debug("generated task breakdown",
		slog.Int("steps", len(breakdown.Steps)),
		slog.Int("suggestions", len(breakdown.Suggestions)))
	shared.RespondWithJSON(w, r, http.StatusOK, breakdownToResponse(breakdown))
}
