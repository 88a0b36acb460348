package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dstanek/focusflow/internal/auth"
	"github.com/dstanek/focusflow/internal/store"
	ws "github.com/dstanek/focusflow/internal/websocket"
	"github.com/dstanek/focusflow/web"
)

// PageHandler renders the authenticated pages: dashboard and stats.
type PageHandler struct {
	taskStore  *store.TaskStore
	focusStore *store.FocusSessionStore
	hub        *ws.Hub
	templates  *template.Template
	logger     *slog.Logger
}

func NewPageHandler(ts *store.TaskStore, fs *store.FocusSessionStore, hub *ws.Hub, logger *slog.Logger) *PageHandler {
	tmpl := template.Must(template.ParseFS(web.Templates, "templates/*.html"))
	return &PageHandler{
		taskStore:  ts,
		focusStore: fs,
		hub:        hub,
		templates:  tmpl,
		logger:     logger,
	}
}

// Index redirects the site root to the dashboard. Unknown paths fall through
// to this handler, so anything but "/" is a 404.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard renders the caller's task list and today's focused minutes.
// A POST creates a task first, then falls through to the same rendering.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodPost {
		description := strings.TrimSpace(r.FormValue("description"))
		if description == "" {
			http.Error(w, "Description is required", http.StatusBadRequest)
			return
		}
		task, err := h.taskStore.Create(ac.UserID, description)
		if err != nil {
			h.logger.Error("create task", "error", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		h.hub.Notify(ac.UserID, ws.NewMessage("task", "created", task.ID, nil))
	}

	tasks, err := h.taskStore.ListForUser(ac.UserID)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	totalSeconds, err := h.focusStore.TodayTotal(ac.UserID)
	if err != nil {
		h.logger.Error("today total", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.templates.ExecuteTemplate(w, "dashboard.html", map[string]any{
		"Username":     ac.Username,
		"Tasks":        tasks,
		"TotalMinutes": totalSeconds / 60,
	})
}

// Stats renders the trailing 7-day histogram of focused minutes.
func (h *PageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	days, err := h.focusStore.Last7Days(ac.UserID)
	if err != nil {
		h.logger.Error("last 7 days", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.templates.ExecuteTemplate(w, "stats.html", map[string]any{
		"Username": ac.Username,
		"Days":     days,
	})
}
