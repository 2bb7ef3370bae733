package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// Router assembles the service's HTTP surface. The auth middleware guards
// every route except the configured exclusions, which cover the entry points
// a visitor needs before they have credentials.
func Router(h *Handler, strategy auth.Strategy, cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(auth.Middleware(strategy, cfg.ExcludedPaths))

	r.Get("/", h.home)
	r.Get("/status", h.status)
	r.Post("/users", h.register)
	r.Post("/sessions", h.login)
	r.Delete("/sessions", h.logout)
	r.Get("/profile", h.profile)
	r.Post("/reset_password", h.requestReset)
	r.Put("/reset_password", h.completeReset)

	return r
}

// BuildStrategy maps the configured AUTH_TYPE to a strategy implementation.
// Unknown values fall back to session authentication with expiration, the
// strictest of the bunch.
func BuildStrategy(cfg Config, users auth.UserStore, sessions session.Store, sessionCfg session.Config, log *slog.Logger) auth.Strategy {
	switch cfg.AuthType {
	case "none":
		return auth.NoAuth{}
	case "basic_auth":
		return auth.NewBasicAuth(users)
	case "session_auth":
		return auth.NewSessionAuth(users, sessions, sessionCfg.CookieName)
	case "session_exp_auth":
		return auth.NewSessionExpAuth(users, sessions, sessionCfg)
	default:
		log.Warn("unknown auth type, falling back to session_exp_auth", slog.String("auth_type", cfg.AuthType))
		return auth.NewSessionExpAuth(users, sessions, sessionCfg)
	}
}
