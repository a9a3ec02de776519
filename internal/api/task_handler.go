package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskai/internal/api/shared"
	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/platform/logger"
	"github.com/phrazzld/taskai/internal/redact"
	"github.com/phrazzld/taskai/internal/store"
)

// TaskHandler handles task CRUD HTTP requests.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /api/tasks requests. It returns all tasks owned by the
// authenticated user, ordered by ID.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	tasks, err := h.taskStore.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	log.Debug("listed tasks",
		slog.Int64("user_id", userID),
		slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Create handles POST /api/tasks requests. Alert values arrive in the
// requested unit and are stored normalized to minutes.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", userID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, err)
		return
	}

	task := domain.NewTask(userID, req.Title)
	task.Description = req.Description
	if req.Status != "" {
		task.Status = domain.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = domain.TaskPriority(req.Priority)
	}
	task.DueDate = req.DueDate
	task.DueTime = req.DueTime

	if req.AlertBefore != nil {
		minutes, err := domain.NormalizeAlertBefore(*req.AlertBefore, domain.AlertUnit(req.AlertUnit))
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid alert schedule", err)
			return
		}
		task.AlertBefore = &minutes
	}

	created, err := h.taskStore.Create(r.Context(), task)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("created task",
		slog.Int64("user_id", userID),
		slog.Int64("task_id", created.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(created))
}

// Update handles PATCH /api/tasks/{id} requests. Only the fields present
// in the request body change; a task owned by another user is reported as
// not found.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", userID),
			slog.Int64("task_id", taskID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, err)
		return
	}

	update := store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
		ClearAlert:  req.ClearAlert,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		update.Priority = &priority
	}
	if req.AlertBefore != nil {
		minutes, err := domain.NormalizeAlertBefore(*req.AlertBefore, domain.AlertUnit(req.AlertUnit))
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid alert schedule", err)
			return
		}
		update.AlertBefore = &minutes
	}

	updated, err := h.taskStore.Update(r.Context(), taskID, userID, update)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("updated task",
		slog.Int64("user_id", userID),
		slog.Int64("task_id", taskID))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(updated))
}

// Delete handles DELETE /api/tasks/{id} requests. A successful delete
// returns 204 with no body.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("deleted task",
		slog.Int64("user_id", userID),
		slog.Int64("task_id", taskID))
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/tasks/stats requests. Due-today counts compare
// calendar dates in UTC, matching how due dates are stored.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	tasks, err := h.taskStore.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute task stats")
		return
	}

	today := time.Now().UTC().Format(domain.DueDateLayout)

	stats := TaskStatsResponse{Total: len(tasks)}
	for _, task := range tasks {
		if task.DueDate == today {
			stats.DueToday++
		}
		switch task.Status {
		case domain.TaskStatusInProgress:
			stats.InProgress++
		case domain.TaskStatusCompleted:
			stats.Completed++
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
