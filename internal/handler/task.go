package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/household/internal/model"
	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

type TaskHandler struct {
	base
	store *store.TaskStore
}

func NewTaskHandler(s *store.TaskStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{base: base{hub: hub, logger: logger}, store: s}
}

type taskRequest struct {
	Title      *string `json:"title"`
	Category   *string `json:"category"`
	Completed  *bool   `json:"completed"`
	DueDate    *string `json:"due_date"`
	AssignedTo *int64  `json:"assigned_to"`
}

func (req taskRequest) dueDate() (*time.Time, error) {
	if req.DueDate == nil || *req.DueDate == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(*req.DueDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List supports ?assigned_to= and ?category=, combined with AND.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	assignedTo, err := queryInt64(r, "assigned_to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assigned_to")
		return
	}
	filter := model.TaskFilter{AssignedTo: assignedTo, Category: queryString(r, "category")}

	tasks, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.fail(w, err, "list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Category == nil || strings.TrimSpace(*req.Category) == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	due, err := req.dueDate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid due_date format")
		return
	}

	t, err := h.store.Create(r.Context(), model.TaskCreate{
		Title:      strings.TrimSpace(*req.Title),
		Category:   strings.TrimSpace(*req.Category),
		DueDate:    due,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		h.fail(w, err, "create task")
		return
	}
	h.broadcast("task", "created", t.ID)
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	t, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get task")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if blank(req.Title) || blank(req.Category) {
		writeError(w, http.StatusBadRequest, "title and category cannot be empty")
		return
	}
	due, err := req.dueDate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid due_date format")
		return
	}

	t, err := h.store.Update(r.Context(), id, model.TaskUpdate{
		Title:      trimPtr(req.Title),
		Category:   trimPtr(req.Category),
		Completed:  req.Completed,
		DueDate:    due,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		h.fail(w, err, "update task")
		return
	}
	h.broadcast("task", "updated", t.ID)
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete task")
		return
	}
	h.broadcast("task", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
