package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestNewTask(t *testing.T) {
	t.Parallel()

	task := NewTask(42, "Write report")

	if task.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", task.UserID)
	}

	if task.Title != "Write report" {
		t.Errorf("Expected title %q, got %q", "Write report", task.Title)
	}

	if task.Status != TaskStatusTodo {
		t.Errorf("Expected default status %s, got %s", TaskStatusTodo, task.Status)
	}

	if task.Priority != TaskPriorityMedium {
		t.Errorf("Expected default priority %s, got %s", TaskPriorityMedium, task.Priority)
	}

	if task.Completed() {
		t.Error("Expected new task to not be completed")
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	validTask := Task{
		UserID:   1,
		Title:    "Test task",
		Status:   TaskStatusTodo,
		Priority: TaskPriorityMedium,
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{
			name:    "missing user ID",
			mutate:  func(task *Task) { task.UserID = 0 },
			wantErr: ErrEmptyTaskUserID,
		},
		{
			name:    "empty title",
			mutate:  func(task *Task) { task.Title = "" },
			wantErr: ErrEmptyTaskTitle,
		},
		{
			name:    "bogus status",
			mutate:  func(task *Task) { task.Status = "bogus" },
			wantErr: ErrInvalidTaskStatus,
		},
		{
			name:    "bogus priority",
			mutate:  func(task *Task) { task.Priority = "urgent" },
			wantErr: ErrInvalidTaskPriority,
		},
		{
			name:    "malformed due date",
			mutate:  func(task *Task) { task.DueDate = "06/01/2024" },
			wantErr: ErrInvalidDueDate,
		},
		{
			name:    "malformed due time",
			mutate:  func(task *Task) { task.DueTime = "9am" },
			wantErr: ErrInvalidDueTime,
		},
		{
			name:    "negative alert offset",
			mutate:  func(task *Task) { task.AlertBefore = intPtr(-5) },
			wantErr: ErrNegativeAlertBefore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			task := validTask
			tt.mutate(&task)
			if err := task.Validate(); err != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTaskCompletedProjection(t *testing.T) {
	t.Parallel()

	task := NewTask(1, "Test task")

	for _, status := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress} {
		task.Status = status
		if task.Completed() {
			t.Errorf("Expected Completed() false for status %s", status)
		}
	}

	task.Status = TaskStatusCompleted
	if !task.Completed() {
		t.Error("Expected Completed() true for completed status")
	}
}

func TestTaskDueAt(t *testing.T) {
	t.Parallel()

	task := Task{DueDate: "2024-06-01", DueTime: "09:00"}

	due, ok := task.DueAt()
	if !ok {
		t.Fatal("Expected due instant to be computable")
	}

	want := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Errorf("Expected due instant %v, got %v", want, due)
	}

	// Missing either component means no due instant.
	for _, task := range []Task{
		{DueDate: "2024-06-01"},
		{DueTime: "09:00"},
		{},
	} {
		if _, ok := task.DueAt(); ok {
			t.Errorf("Expected no due instant for task %+v", task)
		}
	}
}

func TestTaskAlertAt(t *testing.T) {
	t.Parallel()

	task := Task{
		DueDate:     "2024-06-01",
		DueTime:     "09:00",
		AlertBefore: intPtr(30),
	}

	alertAt, ok := task.AlertAt()
	if !ok {
		t.Fatal("Expected alert instant to be computable")
	}

	want := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	if !alertAt.Equal(want) {
		t.Errorf("Expected alert instant %v, got %v", want, alertAt)
	}

	// No offset means no reminder even with a full due instant.
	task.AlertBefore = nil
	if _, ok := task.AlertAt(); ok {
		t.Error("Expected no alert instant without an alert offset")
	}

	// An offset without a due time is not computable.
	task = Task{DueDate: "2024-06-01", AlertBefore: intPtr(30)}
	if _, ok := task.AlertAt(); ok {
		t.Error("Expected no alert instant without a due time")
	}
}

func TestNormalizeAlertBefore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   int
		unit    AlertUnit
		want    int
		wantErr bool
	}{
		{name: "minutes pass through", value: 45, unit: AlertUnitMinutes, want: 45},
		{name: "hours to minutes", value: 2, unit: AlertUnitHours, want: 120},
		{name: "days to minutes", value: 1, unit: AlertUnitDays, want: 1440},
		{name: "empty unit defaults to minutes", value: 10, unit: "", want: 10},
		{name: "zero offset is valid", value: 0, unit: AlertUnitMinutes, want: 0},
		{name: "negative value rejected", value: -1, unit: AlertUnitMinutes, wantErr: true},
		{name: "unknown unit rejected", value: 5, unit: "weeks", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeAlertBefore(tt.value, tt.unit)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %d minutes, got %d", tt.want, got)
			}
		})
	}
}
