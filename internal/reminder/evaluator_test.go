package reminder_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// memorySource is a mutable in-memory TaskSource for tests.
type memorySource struct {
	mu    sync.Mutex
	tasks []*domain.Task
}

func (s *memorySource) ListScheduled(ctx context.Context) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *memorySource) set(tasks ...*domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

// recordingNotifier counts notifications per task ID.
type recordingNotifier struct {
	mu    sync.Mutex
	fired map[int64]int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{fired: make(map[int64]int)}
}

func (n *recordingNotifier) Notify(ctx context.Context, task *domain.Task, alertAt time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fired[task.ID]++
}

func (n *recordingNotifier) count(taskID int64) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fired[taskID]
}

func scheduledTask(id int64, dueDate, dueTime string, alertBefore int) *domain.Task {
	return &domain.Task{
		ID:          id,
		UserID:      1,
		Title:       "scheduled",
		Status:      domain.TaskStatusTodo,
		Priority:    domain.TaskPriorityMedium,
		DueDate:     dueDate,
		DueTime:     dueTime,
		AlertBefore: intPtr(alertBefore),
	}
}

func TestEvaluatorFiresExactlyOnceInsideWindow(t *testing.T) {
	t.Parallel()

	source := &memorySource{}
	notifier := newRecordingNotifier()
	eval := reminder.NewEvaluator(source, notifier, reminder.EvaluatorConfig{}, nil)

	// dueDate=2024-06-01 dueTime=09:00 alertBefore=30 -> alert at 08:30.
	task := scheduledTask(1, "2024-06-01", "09:00", 30)
	source.set(task)

	ctx := context.Background()

	// A tick 10 seconds after the alert instant fires the reminder.
	tick := time.Date(2024, 6, 1, 8, 30, 10, 0, time.UTC)
	eval.EvaluateAt(ctx, tick)
	assert.Equal(t, 1, notifier.count(1))

	// Subsequent ticks inside the same window must not re-fire.
	eval.EvaluateAt(ctx, tick.Add(15*time.Second))
	eval.EvaluateAt(ctx, tick.Add(30*time.Second))
	assert.Equal(t, 1, notifier.count(1))
}

func TestEvaluatorRespectsToleranceWindow(t *testing.T) {
	t.Parallel()

	source := &memorySource{}
	notifier := newRecordingNotifier()
	eval := reminder.NewEvaluator(source, notifier, reminder.EvaluatorConfig{}, nil)

	source.set(scheduledTask(1, "2024-06-01", "09:00", 30))

	ctx := context.Background()
	alertAt := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	// Outside the 60-second tolerance on either side: no reminder.
	eval.EvaluateAt(ctx, alertAt.Add(-2*time.Minute))
	eval.EvaluateAt(ctx, alertAt.Add(2*time.Minute))
	assert.Equal(t, 0, notifier.count(1))

	// At the window edge the reminder fires.
	eval.EvaluateAt(ctx, alertAt.Add(60*time.Second))
	assert.Equal(t, 1, notifier.count(1))
}

func TestEvaluatorRearmsWhenScheduleChanges(t *testing.T) {
	t.Parallel()

	source := &memorySource{}
	notifier := newRecordingNotifier()
	eval := reminder.NewEvaluator(source, notifier, reminder.EvaluatorConfig{}, nil)

	ctx := context.Background()

	source.set(scheduledTask(1, "2024-06-01", "09:00", 30))
	eval.EvaluateAt(ctx, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC))
	require.Equal(t, 1, notifier.count(1))

	// Changing the alert offset produces a new schedule, which may fire again.
	source.set(scheduledTask(1, "2024-06-01", "09:00", 15))
	eval.EvaluateAt(ctx, time.Date(2024, 6, 1, 8, 45, 0, 0, time.UTC))
	assert.Equal(t, 2, notifier.count(1))

	// An unchanged schedule stays fired.
	eval.EvaluateAt(ctx, time.Date(2024, 6, 1, 8, 45, 30, 0, time.UTC))
	assert.Equal(t, 2, notifier.count(1))
}

func TestEvaluatorSkipsIncompleteSchedules(t *testing.T) {
	t.Parallel()

	source := &memorySource{}
	notifier := newRecordingNotifier()
	eval := reminder.NewEvaluator(source, notifier, reminder.EvaluatorConfig{}, nil)

	// No due time: alert instant is not computable even with an offset.
	task := scheduledTask(1, "2024-06-01", "", 30)
	source.set(task)

	eval.EvaluateAt(context.Background(), time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC))
	assert.Equal(t, 0, notifier.count(1))
}

func TestEvaluatorForgetsDeletedTasks(t *testing.T) {
	t.Parallel()

	source := &memorySource{}
	notifier := newRecordingNotifier()
	eval := reminder.NewEvaluator(source, notifier, reminder.EvaluatorConfig{}, nil)

	ctx := context.Background()

	source.set(scheduledTask(1, "2024-06-01", "09:00", 30))
	eval.EvaluateAt(ctx, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC))
	require.Equal(t, 1, notifier.count(1))

	// Delete the task, then recreate the same ID and schedule. With the
	// bookkeeping cleared on the empty pass, the reminder can fire again.
	source.set()
	eval.EvaluateAt(ctx, time.Date(2024, 6, 1, 8, 30, 20, 0, time.UTC))

	source.set(scheduledTask(1, "2024-06-01", "09:00", 30))
	eval.EvaluateAt(ctx, time.Date(2024, 6, 1, 8, 30, 40, 0, time.UTC))
	assert.Equal(t, 2, notifier.count(1))
}

func TestEvaluatorStartStop(t *testing.T) {
	t.Parallel()

	source := &memorySource{}
	notifier := newRecordingNotifier()
	eval := reminder.NewEvaluator(source, notifier, reminder.EvaluatorConfig{
		PollInterval: 10 * time.Millisecond,
		Tolerance:    60 * time.Second,
	}, nil)

	eval.Start(context.Background())

	// Stop must cancel the loop and return; a hang here fails the test
	// by timeout.
	time.Sleep(30 * time.Millisecond)
	eval.Stop()
}
