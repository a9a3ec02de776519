package domain

import (
	"errors"
	"fmt"
	"time"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents the urgency level of a task.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// AlertUnit is the unit in which a task's alert offset is entered.
// Offsets are normalized to minutes at write time regardless of unit.
type AlertUnit string

// Possible alert unit values
const (
	AlertUnitMinutes AlertUnit = "minutes"
	AlertUnitHours   AlertUnit = "hours"
	AlertUnitDays    AlertUnit = "days"
)

// Layouts for the optional schedule fields. Due dates are calendar
// dates and due times are times of day; both are stored as strings in
// these layouts and combined only when a full due instant is needed.
const (
	DueDateLayout = "2006-01-02"
	DueTimeLayout = "15:04"
)

// Common validation errors for Task
var (
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrEmptyTaskUserID     = errors.New("task user ID cannot be empty")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrInvalidDueDate      = errors.New("invalid due date")
	ErrInvalidDueTime      = errors.New("invalid due time")
	ErrNegativeAlertBefore = errors.New("alert offset cannot be negative")
	ErrInvalidAlertUnit    = errors.New("invalid alert unit")
)

// Task represents a unit of work owned by a single user. The ID and
// CreatedAt are assigned by the store at creation time; UserID is
// immutable afterwards. DueDate, DueTime, and AlertBefore are optional:
// a reminder is computable only when all three are present.
type Task struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     string       `json:"due_date,omitempty"`
	DueTime     string       `json:"due_time,omitempty"`

	// AlertBefore is the number of minutes before the due instant at
	// which a reminder should fire. Nil means no reminder.
	AlertBefore *int `json:"alert_before,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewTask creates a Task for the given user with the given title and
// the documented defaults (status todo, priority medium). The ID is
// left zero; the store assigns it on creation.
func NewTask(userID int64, title string) *Task {
	return &Task{
		UserID:   userID,
		Title:    title,
		Status:   TaskStatusTodo,
		Priority: TaskPriorityMedium,
	}
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	if !t.Priority.IsValid() {
		return ErrInvalidTaskPriority
	}

	if t.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, t.DueDate); err != nil {
			return ErrInvalidDueDate
		}
	}

	if t.DueTime != "" {
		if _, err := time.Parse(DueTimeLayout, t.DueTime); err != nil {
			return ErrInvalidDueTime
		}
	}

	if t.AlertBefore != nil && *t.AlertBefore < 0 {
		return ErrNegativeAlertBefore
	}

	return nil
}

// Completed reports whether the task has reached the completed status.
// The boolean is a projection of Status, never stored independently,
// so the two can never disagree.
func (t *Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}

// DueAt combines the due date and due time into a single instant (UTC).
// The second return value is false when either component is absent.
func (t *Task) DueAt() (time.Time, bool) {
	if t.DueDate == "" || t.DueTime == "" {
		return time.Time{}, false
	}

	due, err := time.ParseInLocation(
		DueDateLayout+" "+DueTimeLayout,
		t.DueDate+" "+t.DueTime,
		time.UTC,
	)
	if err != nil {
		return time.Time{}, false
	}

	return due, true
}

// AlertAt computes the instant at which a reminder should fire:
// the due instant minus the alert offset. The second return value is
// false when the task has no computable reminder (missing due date,
// due time, or alert offset).
func (t *Task) AlertAt() (time.Time, bool) {
	if t.AlertBefore == nil {
		return time.Time{}, false
	}

	due, ok := t.DueAt()
	if !ok {
		return time.Time{}, false
	}

	return due.Add(-time.Duration(*t.AlertBefore) * time.Minute), true
}

// IsValid checks if the given status is one of the closed status set.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// IsValid checks if the given priority is one of the closed priority set.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// IsValid checks if the given unit is one of the closed alert unit set.
func (u AlertUnit) IsValid() bool {
	switch u {
	case AlertUnitMinutes, AlertUnitHours, AlertUnitDays:
		return true
	default:
		return false
	}
}

// NormalizeAlertBefore converts an alert offset entered in the given
// unit to minutes. Normalization happens once, at write time; the store
// only ever holds minutes.
func NormalizeAlertBefore(value int, unit AlertUnit) (int, error) {
	if value < 0 {
		return 0, ErrNegativeAlertBefore
	}

	switch unit {
	case AlertUnitMinutes, "":
		return value, nil
	case AlertUnitHours:
		return value * 60, nil
	case AlertUnitDays:
		return value * 1440, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAlertUnit, unit)
	}
}
