package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/taskai/internal/domain"
)

// ReminderEvent is published when a task's alert instant falls due.
// It carries a snapshot of the task rather than a reference, so handlers
// never race with later edits to the stored task.
type ReminderEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Task is the task whose reminder fired, as of evaluation time
	Task domain.Task `json:"task"`

	// AlertAt is the instant the reminder was scheduled for
	AlertAt time.Time `json:"alert_at"`

	// FiredAt is the evaluation instant that triggered the event
	FiredAt time.Time `json:"fired_at"`
}

// NewReminderEvent creates a ReminderEvent for the given task snapshot.
func NewReminderEvent(task domain.Task, alertAt, firedAt time.Time) *ReminderEvent {
	return &ReminderEvent{
		ID:      uuid.New(),
		Task:    task,
		AlertAt: alertAt,
		FiredAt: firedAt,
	}
}

// ReminderHandler processes fired reminder events.
type ReminderHandler interface {
	// HandleReminder processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleReminder(ctx context.Context, event *ReminderEvent) error
}

// ReminderHandlerFunc adapts a function to the ReminderHandler interface.
type ReminderHandlerFunc func(ctx context.Context, event *ReminderEvent) error

// HandleReminder implements the ReminderHandler interface.
func (f ReminderHandlerFunc) HandleReminder(ctx context.Context, event *ReminderEvent) error {
	return f(ctx, event)
}

// ReminderEmitter publishes reminder events to registered handlers. This
// lets the evaluator fire reminders without direct knowledge of what
// consumes them.
type ReminderEmitter interface {
	// EmitReminder publishes the given event to all registered handlers.
	// Returns an error if any handler fails.
	EmitReminder(ctx context.Context, event *ReminderEvent) error
}
