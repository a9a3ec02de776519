package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryReminderEmitter dispatches reminder events to handlers
// registered in the same process.
type InMemoryReminderEmitter struct {
	handlers []ReminderHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryReminderEmitter creates a new InMemoryReminderEmitter.
func NewInMemoryReminderEmitter(logger *slog.Logger) *InMemoryReminderEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryReminderEmitter{
		handlers: make([]ReminderHandler, 0),
		logger:   logger.With("component", "reminder_emitter"),
	}
}

// RegisterHandler adds a new handler to receive reminder events.
func (e *InMemoryReminderEmitter) RegisterHandler(handler ReminderHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered reminder handler", "handler_count", len(e.handlers))
}

// EmitReminder publishes the event to all registered handlers. A failing
// handler does not stop delivery to the rest; the first error is returned.
func (e *InMemoryReminderEmitter) EmitReminder(ctx context.Context, event *ReminderEvent) error {
	e.mu.RLock()
	handlers := make([]ReminderHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting reminder event",
		"event_id", event.ID,
		"task_id", event.Task.ID,
		"handler_count", len(handlers))

	if len(handlers) == 0 {
		e.logger.Warn("no handlers registered for reminder event",
			"event_id", event.ID,
			"task_id", event.Task.ID)
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleReminder(ctx, event); err != nil {
			e.logger.Error("handler failed to process reminder event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"task_id", event.Task.ID)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
