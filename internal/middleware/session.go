package middleware

import (
	"net/http"

	"console/internal/session"
)

// LoginPath is where unauthenticated operators are sent.
const LoginPath = "/login"

// RequireSession redirects to the login page when the request carries no
// session cookie. The token itself is checked by the backend on first use.
func RequireSession(store *session.CookieStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store.Token(r) == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
