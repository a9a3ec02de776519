package api

import (
	"time"

	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/suggestion"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID int64 `json:"user_id"`

	// Username echoes the registered name back to the client
	Username string `json:"username"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateTaskRequest defines the payload for creating a task.
// AlertBefore is expressed in AlertUnit (defaulting to minutes) and is
// normalized to minutes before storage.
type CreateTaskRequest struct {
	Title       string `json:"title"        validate:"required,max=200"`
	Description string `json:"description"  validate:"max=2000"`
	Status      string `json:"status"       validate:"omitempty,oneof=todo in_progress completed"`
	Priority    string `json:"priority"     validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date"     validate:"omitempty,datetime=2006-01-02"`
	DueTime     string `json:"due_time"     validate:"omitempty,datetime=15:04"`
	AlertBefore *int   `json:"alert_before" validate:"omitempty,gte=0"`
	AlertUnit   string `json:"alert_unit"   validate:"omitempty,oneof=minutes hours days"`
}

// UpdateTaskRequest defines the payload for partially updating a task.
// Absent fields leave the stored value unchanged. ClearAlert removes the
// alert schedule and wins over AlertBefore when both are sent.
type UpdateTaskRequest struct {
	Title       *string `json:"title"        validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"  validate:"omitempty,max=2000"`
	Status      *string `json:"status"       validate:"omitempty,oneof=todo in_progress completed"`
	Priority    *string `json:"priority"     validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date"     validate:"omitempty,datetime=2006-01-02"`
	DueTime     *string `json:"due_time"     validate:"omitempty,datetime=15:04"`
	AlertBefore *int    `json:"alert_before" validate:"omitempty,gte=0"`
	AlertUnit   string  `json:"alert_unit"   validate:"omitempty,oneof=minutes hours days"`
	ClearAlert  bool    `json:"clear_alert"`
}

// TaskResponse represents a task in API responses. Completed is derived
// from the status, not stored separately.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	DueDate     string    `json:"due_date,omitempty"`
	DueTime     string    `json:"due_time,omitempty"`
	AlertBefore *int      `json:"alert_before,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskStatsResponse summarizes the authenticated user's tasks.
type TaskStatsResponse struct {
	Total      int `json:"total"`
	DueToday   int `json:"due_today"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// SuggestPriorityRequest defines the payload for the priority suggestion endpoint.
type SuggestPriorityRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// SuggestPriorityResponse carries the recommended priority. Degraded is
// true when the provider was unavailable and a fallback value was used.
type SuggestPriorityResponse struct {
	Priority string `json:"priority"`
	Degraded bool   `json:"degraded"`
}

// BreakdownRequest defines the payload for the task breakdown endpoint.
// FollowUp optionally refines a previous breakdown.
type BreakdownRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	FollowUp    string `json:"follow_up"   validate:"max=2000"`
}

// BreakdownResponse carries the generated task breakdown.
type BreakdownResponse struct {
	Steps         []string `json:"steps"`
	Suggestions   []string `json:"suggestions,omitempty"`
	EstimatedTime string   `json:"estimated_time,omitempty"`
}

// taskToResponse converts a domain.Task to its API representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Completed:   task.Completed(),
		DueDate:     task.DueDate,
		DueTime:     task.DueTime,
		AlertBefore: task.AlertBefore,
		CreatedAt:   task.CreatedAt,
	}
}

// breakdownToResponse converts a suggestion.Breakdown to its API representation.
func breakdownToResponse(b *suggestion.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Steps:         b.Steps,
		Suggestions:   b.Suggestions,
		EstimatedTime: b.EstimatedTime,
	}
}
