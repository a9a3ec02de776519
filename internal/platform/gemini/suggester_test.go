package gemini

import (
	"strings"
	"testing"

	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/suggestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		want    domain.TaskPriority
		wantErr bool
	}{
		{name: "bare high", text: "high", want: domain.TaskPriorityHigh},
		{name: "bare medium", text: "medium", want: domain.TaskPriorityMedium},
		{name: "bare low", text: "low", want: domain.TaskPriorityLow},
		{name: "mixed case", text: "High", want: domain.TaskPriorityHigh},
		{
			name: "verbose answer",
			text: "I would classify this task as medium priority.",
			want: domain.TaskPriorityMedium,
		},
		{name: "high wins over medium", text: "medium-high", want: domain.TaskPriorityHigh},
		{name: "no label", text: "I cannot determine this.", wantErr: true},
		{name: "empty answer", text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parsePriority(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, suggestion.ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	raw := `{"steps":["a"],"suggestions":[],"estimated_time":"1 hour"}`

	tests := []struct {
		name string
		text string
	}{
		{name: "plain json", text: raw},
		{name: "fenced json", text: "```json\n" + raw + "\n```"},
		{name: "fenced without language", text: "```\n" + raw + "\n```"},
		{name: "surrounding whitespace", text: "\n  " + raw + "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, raw, extractJSON(tt.text))
		})
	}
}

func TestPromptsCarryTaskFields(t *testing.T) {
	t.Parallel()

	p := priorityPrompt("Ship release", "Cut the 2.0 branch")
	assert.Contains(t, p, "Ship release")
	assert.Contains(t, p, "Cut the 2.0 branch")
	assert.Contains(t, strings.ToLower(p), "low, medium, or high")

	b := breakdownPrompt("Ship release", "", "Focus on testing")
	assert.Contains(t, b, "Ship release")
	assert.Contains(t, b, "Focus on testing")
	assert.NotContains(t, b, "Description:")
}
