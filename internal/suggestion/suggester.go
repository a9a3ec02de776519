// Package suggestion defines the boundary between the application core
// and external AI/LLM services that produce task suggestions. The core
// never depends on a concrete provider; it tolerates any Suggester
// failing, timing out, or returning malformed data, and degrades to
// caller-supplied defaults.
package suggestion

import (
	"context"

	"github.com/phrazzld/taskai/internal/domain"
)

// Limits on the structured breakdown a Suggester may return.
const (
	MaxBreakdownSteps       = 5
	MaxBreakdownSuggestions = 3
)

// Breakdown is a structured decomposition of a task produced by a
// language model: ordered steps, improvement suggestions, and a rough
// time estimate.
type Breakdown struct {
	Steps         []string `json:"steps"`
	Suggestions   []string `json:"suggestions"`
	EstimatedTime string   `json:"estimated_time"`
}

// Suggester defines the operations an AI suggestion provider supports.
type Suggester interface {
	// SuggestPriority recommends a priority for a task described by its
	// title and description. Returns one of the closed priority set, or
	// an error the caller is expected to recover from by falling back to
	// a default priority.
	SuggestPriority(ctx context.Context, title, description string) (domain.TaskPriority, error)

	// BreakdownTask decomposes a task into at most MaxBreakdownSteps
	// ordered steps and MaxBreakdownSuggestions suggestions, with an
	// estimated-time string. followUp optionally carries a user's
	// clarifying message and may be empty.
	BreakdownTask(ctx context.Context, title, description, followUp string) (*Breakdown, error)
}

// Clamp trims an oversized breakdown down to the documented limits.
// Providers occasionally return more items than asked for; the extra
// entries are dropped rather than failing the whole response.
func (b *Breakdown) Clamp() {
	if len(b.Steps) > MaxBreakdownSteps {
		b.Steps = b.Steps[:MaxBreakdownSteps]
	}
	if len(b.Suggestions) > MaxBreakdownSuggestions {
		b.Suggestions = b.Suggestions[:MaxBreakdownSuggestions]
	}
}
