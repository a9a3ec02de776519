package reminder

import (
	"context"
	"time"

	"github.com/phrazzld/taskai/internal/domain"
)

// TaskSource provides the tasks the evaluator inspects on each tick.
// Implementations may pre-filter to tasks with a computable alert
// instant; the evaluator skips unschedulable tasks either way.
type TaskSource interface {
	// ListScheduled returns the tasks to evaluate, across all users.
	ListScheduled(ctx context.Context) ([]*domain.Task, error)
}

// Notifier receives fired reminders. Implementations must be fast or
// hand off asynchronously: the evaluator calls Notify synchronously
// from its tick.
type Notifier interface {
	Notify(ctx context.Context, task *domain.Task, alertAt time.Time)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, task *domain.Task, alertAt time.Time)

// Notify implements the Notifier interface.
func (f NotifierFunc) Notify(ctx context.Context, task *domain.Task, alertAt time.Time) {
	f(ctx, task, alertAt)
}
