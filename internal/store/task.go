package store

import (
	"context"

	"github.com/phrazzld/taskai/internal/domain"
)

// TaskUpdate carries a partial update to a task. Nil fields are left
// unchanged; non-nil fields replace the stored value. The owning user
// and creation timestamp are not updatable.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *string
	DueTime     *string

	// AlertBefore replaces the stored alert offset in minutes.
	// ClearAlert removes it; setting both is a caller bug and
	// ClearAlert wins.
	AlertBefore *int
	ClearAlert  bool
}

// TaskStore defines the interface for task persistence. Every operation
// that targets an existing task is scoped to an owning user; a task
// that is missing or owned by someone else yields ErrTaskNotFound
// either way.
type TaskStore interface {
	// Create saves a new task, assigning its ID and creation timestamp,
	// and returns the stored task.
	// Returns ErrInvalidEntity wrapping the domain error if the task is invalid.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// ListByUser returns all tasks owned by the given user, ordered by ID.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// Update applies a partial update to the task with the given ID if it
	// is owned by userID, and returns the updated task.
	// Returns ErrTaskNotFound if the task is absent or not owned.
	// Returns ErrInvalidEntity if the update would make the task invalid;
	// the stored task is left unchanged in that case.
	Update(ctx context.Context, taskID, userID int64, update TaskUpdate) (*domain.Task, error)

	// Delete removes the task with the given ID if it is owned by userID.
	// Returns ErrTaskNotFound if the task is absent or not owned.
	Delete(ctx context.Context, taskID, userID int64) error
}
