package gemini

import (
	"fmt"
	"strings"

	"github.com/phrazzld/taskai/internal/suggestion"
)

// priorityPrompt builds the prompt asking the model to classify a
// task's urgency as exactly one of the closed priority labels.
func priorityPrompt(title, description string) string {
	var b strings.Builder
	b.WriteString("Analyze the following task and recommend a priority level ")
	b.WriteString("based on urgency and importance. ")
	b.WriteString("Answer with exactly one word: low, medium, or high.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", title)
	if description != "" {
		fmt.Fprintf(&b, "Description: %s\n", description)
	}
	return b.String()
}

// breakdownPrompt builds the prompt asking the model for a structured
// JSON decomposition of the task, optionally informed by a user
// follow-up message.
func breakdownPrompt(title, description, followUp string) string {
	var b strings.Builder
	b.WriteString("You are a helpful task management assistant. ")
	b.WriteString("Break the following task into concrete steps.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", title)
	if description != "" {
		fmt.Fprintf(&b, "Description: %s\n", description)
	}
	if followUp != "" {
		fmt.Fprintf(&b, "User note: %s\n", followUp)
	}
	fmt.Fprintf(&b, `
Respond with JSON only, no prose, in this shape:
{
  "steps": ["..."],          // at most %d ordered steps
  "suggestions": ["..."],    // at most %d improvement suggestions
  "estimated_time": "..."    // rough total time estimate, e.g. "2 hours"
}
`, suggestion.MaxBreakdownSteps, suggestion.MaxBreakdownSuggestions)
	return b.String()
}
