package handlers

import (
	"context"
	"net/http"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/middleware"
	"github.com/crucial707/todo-api/internal/models"
	"github.com/crucial707/todo-api/internal/service"
)

// Tasks is what TaskHandler needs from the task service. Every call carries the caller.
type Tasks interface {
	Create(ctx context.Context, actor auth.Identity, in service.NewTask) (*models.Task, error)
	FindOwned(ctx context.Context, actor auth.Identity, id int) (*models.Task, error)
	ListOwned(ctx context.Context, actor auth.Identity, status string) ([]models.Task, error)
	Update(ctx context.Context, actor auth.Identity, id int, patch service.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, actor auth.Identity, id int) error
}

// ==========================
// TaskHandler
// ==========================
type TaskHandler struct {
	Tasks Tasks
}

func caller(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	actor, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
	}
	return actor, ok
}

// ==========================
// Create Task
// ==========================
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.NewTask
	if !decodeJSON(w, r, &input) {
		return
	}

	task, err := h.Tasks.Create(r.Context(), actor, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// ==========================
// List Tasks (?status=)
// ==========================
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	tasks, err := h.Tasks.ListOwned(r.Context(), actor, r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// ==========================
// Get Task
// ==========================
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "invalid task id")
	if !ok {
		return
	}

	task, err := h.Tasks.FindOwned(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ==========================
// Update Task
// ==========================
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "invalid task id")
	if !ok {
		return
	}
	var patch service.TaskPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	task, err := h.Tasks.Update(r.Context(), actor, id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ==========================
// Delete Task
// ==========================
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "invalid task id")
	if !ok {
		return
	}

	if err := h.Tasks.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
