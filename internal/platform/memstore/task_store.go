package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/platform/logger"
	"github.com/phrazzld/taskai/internal/store"
)

// TaskStore implements store.TaskStore backed by an in-memory map.
// A single mutex serializes mutations, so a read-modify-write update
// is atomic per task and concurrent updates cannot lose writes.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	nextID int64
	logger *slog.Logger
}

// Ensure TaskStore implements the store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a new empty in-memory task store.
func NewTaskStore(log *slog.Logger) *TaskStore {
	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Create saves a new task, assigning the next monotonic ID and the
// creation timestamp.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *task
	stored.ID = s.nextID
	stored.CreatedAt = time.Now().UTC()
	if stored.AlertBefore != nil {
		v := *task.AlertBefore
		stored.AlertBefore = &v
	}
	s.nextID++

	s.tasks[stored.ID] = &stored

	log.Debug("task created",
		slog.Int64("task_id", stored.ID),
		slog.Int64("user_id", stored.UserID))

	return copyTask(&stored), nil
}

// ListByUser returns all tasks owned by the given user, ordered by ID.
func (s *TaskStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range s.tasks {
		if task.UserID == userID {
			tasks = append(tasks, copyTask(task))
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	return tasks, nil
}

// ListScheduled returns every task with a computable alert instant
// (due date, due time, and alert offset all present), across all users.
// The reminder evaluator is the only intended caller.
func (s *TaskStore) ListScheduled(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range s.tasks {
		if _, ok := task.AlertAt(); ok {
			tasks = append(tasks, copyTask(task))
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	return tasks, nil
}

// Update applies a partial update to a task owned by userID.
// A task that is absent or owned by a different user yields
// store.ErrTaskNotFound either way, so callers cannot probe for the
// existence of other users' tasks.
func (s *TaskStore) Update(
	ctx context.Context,
	taskID, userID int64,
	update store.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}

	// Apply the update to a copy and validate before committing, so a
	// rejected update leaves the stored task untouched.
	updated := *task
	if task.AlertBefore != nil {
		v := *task.AlertBefore
		updated.AlertBefore = &v
	}

	if update.Title != nil {
		updated.Title = *update.Title
	}
	if update.Description != nil {
		updated.Description = *update.Description
	}
	if update.Status != nil {
		updated.Status = *update.Status
	}
	if update.Priority != nil {
		updated.Priority = *update.Priority
	}
	if update.DueDate != nil {
		updated.DueDate = *update.DueDate
	}
	if update.DueTime != nil {
		updated.DueTime = *update.DueTime
	}
	if update.ClearAlert {
		updated.AlertBefore = nil
	} else if update.AlertBefore != nil {
		v := *update.AlertBefore
		updated.AlertBefore = &v
	}

	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.tasks[taskID] = &updated

	log.Debug("task updated",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))

	return copyTask(&updated), nil
}

// Delete removes a task owned by userID, with the same ownership-blind
// not-found semantics as Update.
func (s *TaskStore) Delete(ctx context.Context, taskID, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}

	delete(s.tasks, taskID)

	log.Debug("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))

	return nil
}

// copyTask returns a deep copy so callers can never mutate stored state
// through a returned pointer.
func copyTask(task *domain.Task) *domain.Task {
	result := *task
	if task.AlertBefore != nil {
		v := *task.AlertBefore
		result.AlertBefore = &v
	}
	return &result
}
