package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dstanek/focusflow/internal/auth"
	"github.com/dstanek/focusflow/internal/store"
	"github.com/dstanek/focusflow/web"
)

const sessionCookieName = "focusflow_session"

type AuthHandler struct {
	userStore    *store.UserStore
	sessionStore *store.SessionStore
	templates    *template.Template
	logger       *slog.Logger
}

func NewAuthHandler(us *store.UserStore, ss *store.SessionStore, logger *slog.Logger) *AuthHandler {
	tmpl := template.Must(template.ParseFS(web.Templates, "templates/*.html"))
	return &AuthHandler{
		userStore:    us,
		sessionStore: ss,
		templates:    tmpl,
		logger:       logger,
	}
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "register.html", map[string]any{"Username": ""})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.templates.ExecuteTemplate(w, "register.html", map[string]any{
			"Username": username,
			"Error":    "Username and password are required",
		})
		return
	}

	_, err := h.userStore.Register(username, password)
	if errors.Is(err, store.ErrDuplicateUsername) {
		// Conflict: report it, no account and no session is created
		w.WriteHeader(http.StatusConflict)
		h.templates.ExecuteTemplate(w, "register.html", map[string]any{
			"Username": username,
			"Error":    "That username is already taken",
		})
		return
	}
	if err != nil {
		h.logger.Error("register", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "login.html", map[string]any{"Username": ""})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.userStore.Verify(username, password)
	if err != nil {
		h.logger.Error("login verify", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		// Unknown username and wrong password are indistinguishable here
		w.WriteHeader(http.StatusUnauthorized)
		h.templates.ExecuteTemplate(w, "login.html", map[string]any{
			"Username": username,
			"Error":    "Invalid credentials",
		})
		return
	}

	sess, err := h.sessionStore.Create(user.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.sessionStore.Delete(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err, "session_id", ac.SessionID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
