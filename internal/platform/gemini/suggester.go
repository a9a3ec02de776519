package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/phrazzld/taskai/internal/config"
	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/suggestion"
	"google.golang.org/genai"
)

// Suggester implements the suggestion.Suggester interface using
// Google's Gemini API to produce task priority recommendations and
// structured task breakdowns.
type Suggester struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Ensure Suggester implements the suggestion.Suggester interface
var _ suggestion.Suggester = (*Suggester)(nil)

// NewSuggester creates a new Gemini-backed Suggester with the provided
// dependencies. Returns an error if initialization fails.
func NewSuggester(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*Suggester, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", suggestion.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", suggestion.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			suggestion.ErrInvalidConfig, err)
	}

	return &Suggester{
		logger: logger.With(slog.String("component", "gemini_suggester")),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// SuggestPriority asks the model to classify a task's urgency and maps
// the free-text answer onto the closed priority set.
func (s *Suggester) SuggestPriority(
	ctx context.Context,
	title, description string,
) (domain.TaskPriority, error) {
	prompt := priorityPrompt(title, description)

	text, err := s.callWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	priority, err := parsePriority(text)
	if err != nil {
		s.logger.WarnContext(ctx, "could not map model answer to a priority",
			"answer_length", len(text))
		return "", err
	}

	return priority, nil
}

// BreakdownTask asks the model for a structured JSON decomposition of
// the task and parses it into a suggestion.Breakdown.
func (s *Suggester) BreakdownTask(
	ctx context.Context,
	title, description, followUp string,
) (*suggestion.Breakdown, error) {
	prompt := breakdownPrompt(title, description, followUp)

	text, err := s.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var breakdown suggestion.Breakdown
	if err := json.Unmarshal([]byte(extractJSON(text)), &breakdown); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			suggestion.ErrInvalidResponse, err)
	}

	if len(breakdown.Steps) == 0 {
		return nil, fmt.Errorf("%w: breakdown contains no steps", suggestion.ErrInvalidResponse)
	}

	breakdown.Clamp()
	return &breakdown, nil
}

// callWithRetry makes a call to the Gemini API with exponential backoff
// retry logic. Transient errors are retried up to config.MaxRetries
// times with jittered backoff; permanent errors (content blocked,
// malformed response) are returned immediately.
func (s *Suggester) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := s.config.MaxRetries
	baseDelaySeconds := s.config.RetryDelaySeconds
	attempt := 0
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		s.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		s.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	for attempt <= maxRetries {
		attemptNum := attempt + 1 // For logging (1-based)
		s.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		text, err, isTransient := s.callOnce(ctx, prompt)
		if err == nil {
			s.logger.DebugContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return text, nil
		}

		s.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if !isTransient {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				suggestion.ErrTransientFailure, maxRetries)
		}

		// Exponential backoff with jitter:
		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		select {
		case <-time.After(delay):
			// Continue to next retry
		case <-ctx.Done():
			s.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", suggestion.ErrTransientFailure, ctx.Err())
		}

		attempt++
	}

	return "", fmt.Errorf("%w: failed after %d attempts", suggestion.ErrTransientFailure, attempt)
}

// callOnce performs a single generate call and classifies the outcome.
// The third return value reports whether a failure is transient.
func (s *Suggester) callOnce(ctx context.Context, prompt string) (string, error, bool) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		// API-level errors (network, quota) are assumed transient.
		return "", fmt.Errorf("%w: %v", suggestion.ErrTransientFailure, err), true
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", suggestion.ErrInvalidResponse), false
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", suggestion.ErrContentBlocked), false
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", suggestion.ErrInvalidResponse), false
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("%w: empty text in response", suggestion.ErrInvalidResponse), false
	}

	return text.String(), nil, false
}

// parsePriority maps the model's free-text answer onto the closed
// priority set. Matches are checked in order of specificity so an
// answer like "medium-high" resolves to high.
func parsePriority(text string) (domain.TaskPriority, error) {
	answer := strings.ToLower(text)
	switch {
	case strings.Contains(answer, "high"):
		return domain.TaskPriorityHigh, nil
	case strings.Contains(answer, "medium"):
		return domain.TaskPriorityMedium, nil
	case strings.Contains(answer, "low"):
		return domain.TaskPriorityLow, nil
	default:
		return "", fmt.Errorf("%w: no priority label in answer", suggestion.ErrInvalidResponse)
	}
}

// extractJSON strips markdown code fences the model sometimes wraps
// around JSON output.
func extractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return strings.TrimSpace(trimmed)
}
