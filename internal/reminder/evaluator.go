// Package reminder implements the periodic evaluator that decides when
// a task's reminder should fire. On each tick it computes every
// schedulable task's alert instant (due instant minus alert offset) and
// notifies once when the current time falls within the tolerance window
// around it. Firing is idempotent per schedule: a task re-arms only
// when its due date, due time, or alert offset changes.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// EvaluatorConfig holds configuration for the reminder evaluator.
type EvaluatorConfig struct {
	// PollInterval is how often loaded tasks are re-evaluated.
	PollInterval time.Duration

	// Tolerance is the half-width of the window around a task's alert
	// instant within which a reminder fires.
	Tolerance time.Duration
}

// DefaultEvaluatorConfig returns an EvaluatorConfig with the documented
// defaults: one evaluation per minute with a 60-second tolerance.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		PollInterval: time.Minute,
		Tolerance:    60 * time.Second,
	}
}

// Evaluator periodically evaluates tasks against wall-clock time and
// fires reminders through a Notifier. It records which schedules have
// already fired so a reminder never repeats while the task's schedule
// is unchanged, even when the tick interval is shorter than the
// tolerance window.
type Evaluator struct {
	source   TaskSource
	notifier Notifier
	config   EvaluatorConfig
	logger   *slog.Logger
	clock    func() time.Time // Injectable for testing

	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	mu    sync.Mutex
	fired map[int64]string // task ID -> schedule signature already notified
}

// NewEvaluator creates an Evaluator over the given task source and
// notifier. Zero config fields are replaced with the defaults.
func NewEvaluator(
	source TaskSource,
	notifier Notifier,
	config EvaluatorConfig,
	log *slog.Logger,
) *Evaluator {
	defaults := DefaultEvaluatorConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.Tolerance <= 0 {
		config.Tolerance = defaults.Tolerance
	}
	if log == nil {
		log = slog.Default()
	}

	return &Evaluator{
		source:   source,
		notifier: notifier,
		config:   config,
		logger:   log.With(slog.String("component", "reminder_evaluator")),
		clock:    time.Now,
		fired:    make(map[int64]string),
	}
}

// Start launches the evaluation loop in a background goroutine.
// The loop runs until Stop is called or the given context is cancelled.
func (e *Evaluator) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	e.cancelFunc = cancel

	e.wg.Add(1)
	go e.loop(loopCtx)

	e.logger.Info("reminder evaluator started",
		slog.Duration("poll_interval", e.config.PollInterval),
		slog.Duration("tolerance", e.config.Tolerance))
}

// Stop cancels the evaluation loop and waits for it to exit. The timer
// is released here so tearing the evaluator down never leaks a
// repeating callback over stale task data.
func (e *Evaluator) Stop() {
	if e.cancelFunc != nil {
		e.cancelFunc()
	}
	e.wg.Wait()
	e.logger.Info("reminder evaluator stopped")
}

// loop ticks at the configured interval until the context is cancelled.
// Ticks are evaluated synchronously, so they never overlap.
func (e *Evaluator) loop(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.EvaluateAt(ctx, e.clock().UTC())
		}
	}
}

// EvaluateAt runs a single evaluation pass against the given instant.
// Exported so a single tick can be driven directly; the background loop
// calls it with the current time.
func (e *Evaluator) EvaluateAt(ctx context.Context, now time.Time) {
	tasks, err := e.source.ListScheduled(ctx)
	if err != nil {
		e.logger.Error("failed to load tasks for reminder evaluation", "error", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[int64]struct{}, len(tasks))

	for _, task := range tasks {
		alertAt, ok := task.AlertAt()
		if !ok {
			continue
		}
		seen[task.ID] = struct{}{}

		sig := scheduleSignature(task.DueDate, task.DueTime, *task.AlertBefore)

		// A changed schedule re-arms the reminder.
		if e.fired[task.ID] == sig {
			continue
		}

		diff := now.Sub(alertAt)
		if diff < 0 {
			diff = -diff
		}
		if diff > e.config.Tolerance {
			continue
		}

		e.fired[task.ID] = sig
		e.logger.Debug("reminder fired",
			slog.Int64("task_id", task.ID),
			slog.Time("alert_at", alertAt))
		e.notifier.Notify(ctx, task, alertAt)
	}

	// Drop bookkeeping for tasks that were deleted or are no longer
	// schedulable, so the fired map cannot grow without bound.
	for id := range e.fired {
		if _, ok := seen[id]; !ok {
			delete(e.fired, id)
		}
	}
}

// scheduleSignature identifies a task's reminder schedule. Two equal
// signatures mean the reminder has the same alert instant.
func scheduleSignature(dueDate, dueTime string, alertBefore int) string {
	return fmt.Sprintf("%s|%s|%d", dueDate, dueTime, alertBefore)
}
