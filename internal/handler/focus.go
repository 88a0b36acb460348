package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dstanek/focusflow/internal/auth"
	"github.com/dstanek/focusflow/internal/store"
	ws "github.com/dstanek/focusflow/internal/websocket"
)

type FocusHandler struct {
	focusStore *store.FocusSessionStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewFocusHandler(fs *store.FocusSessionStore, hub *ws.Hub, logger *slog.Logger) *FocusHandler {
	return &FocusHandler{
		focusStore: fs,
		hub:        hub,
		logger:     logger,
	}
}

// Record appends a finished work session for the caller. Meant for background
// submission from the timer, so it acknowledges with 201 instead of redirecting.
func (h *FocusHandler) Record(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	duration, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("duration")), 10, 64)
	if err != nil || duration <= 0 {
		http.Error(w, "Duration must be a positive integer of seconds", http.StatusBadRequest)
		return
	}

	sess, err := h.focusStore.Append(ac.UserID, duration)
	if err != nil {
		h.logger.Error("append focus session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.hub.Notify(ac.UserID, ws.NewMessage("focus_session", "recorded", sess.ID, map[string]any{
		"duration": sess.Duration,
	}))

	w.WriteHeader(http.StatusCreated)
	fmt.Fprint(w, "OK")
}
