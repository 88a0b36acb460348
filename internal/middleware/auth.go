package middleware

import (
	"net/http"

	"github.com/dstanek/focusflow/internal/auth"
	"github.com/dstanek/focusflow/internal/store"
)

const sessionCookieName = "focusflow_session"

// RequireAuth validates the session cookie and populates AuthContext.
// Anonymous callers are redirected to the login page before any handler
// runs, so protected routes never produce partial side effects.
func RequireAuth(sessionStore *store.SessionStore, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				redirectToLogin(w, r)
				return
			}

			sess, err := sessionStore.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				redirectToLogin(w, r)
				return
			}

			user, err := userStore.GetByID(sess.UserID)
			if err != nil || user == nil {
				redirectToLogin(w, r)
				return
			}

			ac := auth.AuthContext{
				UserID:    user.ID,
				Username:  user.Username,
				SessionID: sess.ID,
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
