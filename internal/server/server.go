package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dstanek/focusflow/internal/handler"
	"github.com/dstanek/focusflow/internal/middleware"
	"github.com/dstanek/focusflow/internal/store"
	ws "github.com/dstanek/focusflow/internal/websocket"
	"github.com/dstanek/focusflow/web"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	pageH        *handler.PageHandler
	taskH        *handler.TaskHandler
	focusH       *handler.FocusHandler
	sessionStore *store.SessionStore
	userStore    *store.UserStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	taskStore := store.NewTaskStore(db)
	focusStore := store.NewFocusSessionStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		pageH:        handler.NewPageHandler(taskStore, focusStore, hub, logger.With("component", "page")),
		taskH:        handler.NewTaskHandler(taskStore, hub, logger.With("component", "task")),
		focusH:       handler.NewFocusHandler(focusStore, hub, logger.With("component", "focus")),
		sessionStore: sessionStore,
		userStore:    userStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /register", s.authH.RegisterPage)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.Handle("GET /static/", http.FileServerFS(web.Static))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	// Apply request logging middleware
	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /logout", s.authH.Logout)

	mux.HandleFunc("GET /dashboard", s.pageH.Dashboard)
	mux.HandleFunc("POST /dashboard", s.pageH.Dashboard)
	mux.HandleFunc("GET /stats", s.pageH.Stats)

	mux.HandleFunc("POST /task/{id}/toggle", s.taskH.Toggle)
	mux.HandleFunc("POST /session", s.focusH.Record)

	// Live dashboard updates
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	// Site root; also catches unmatched paths as 404
	mux.HandleFunc("GET /", s.pageH.Index)
}
