package auth

import (
	"errors"
	"net/http"
)

// Middleware guards a handler chain with the given strategy. Requests to
// excluded paths pass through untouched; everything else must resolve to a
// user, which is stored on the request context for downstream handlers.
//
// Denials map to the API's historical status codes: missing or malformed
// credentials are 401, an unknown account is 404, and everything else that
// fails to identify a user is 403.
func Middleware(strategy Strategy, excludedPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strategy.RequireAuth(r.URL.Path, excludedPaths) {
				next.ServeHTTP(w, r)
				return
			}

			user, err := strategy.CurrentUser(r.Context(), r)
			if err != nil {
				switch {
				case errors.Is(err, ErrUnauthorized),
					errors.Is(err, ErrMalformedHeader),
					errors.Is(err, ErrNoSessionCookie),
					errors.Is(err, ErrInvalidCredentials):
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
				case errors.Is(err, ErrUserNotFound):
					http.Error(w, "Not found", http.StatusNotFound)
				default:
					http.Error(w, "Forbidden", http.StatusForbidden)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
