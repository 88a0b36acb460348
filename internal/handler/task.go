package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dstanek/focusflow/internal/auth"
	"github.com/dstanek/focusflow/internal/store"
	ws "github.com/dstanek/focusflow/internal/websocket"
)

type TaskHandler struct {
	taskStore *store.TaskStore
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, hub *ws.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskStore: ts,
		hub:       hub,
		logger:    logger,
	}
}

// Toggle flips a task's done flag. Existence is checked before ownership, so
// a missing id is a 404 even for a non-owner; see DESIGN.md.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	task, err := h.taskStore.GetByID(id)
	if err != nil {
		h.logger.Error("get task", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if task == nil {
		http.NotFound(w, r)
		return
	}
	if task.UserID != ac.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	updated, err := h.taskStore.Toggle(id)
	if err != nil {
		h.logger.Error("toggle task", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.hub.Notify(ac.UserID, ws.NewMessage("task", "toggled", updated.ID, map[string]any{
		"done": updated.Done,
	}))

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
