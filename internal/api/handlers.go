package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Handler exposes the account lifecycle over HTTP. Responses mirror the
// service's JSON vocabulary: a "message" field for outcomes, an "email" field
// echoing the account acted on.
type Handler struct {
	svc        *auth.Service
	cookieName string
	log        *slog.Logger
}

func NewHandler(svc *auth.Service, cookieName string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{svc: svc, cookieName: cookieName, log: log}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bienvenue"})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.svc.Register(r.Context(), email, password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{
			"email":   user.Email,
			"message": "user created",
		})
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "email already registered",
		})
	default:
		h.log.ErrorContext(r.Context(), "registration failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	sessionID, err := h.svc.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "wrong credentials"})
			return
		}
		h.log.ErrorContext(r.Context(), "login failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{
		"email":   email,
		"message": "logged in",
	})
}

// logout resolves the cookie itself rather than relying on the middleware:
// the /sessions path has to stay excluded so login can reach it.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if err := h.svc.Logout(r.Context(), user.ID); err != nil {
		h.log.ErrorContext(r.Context(), "logout failed", logger.Error(err), logger.UserID(user.ID))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		var err error
		if user, err = h.currentUser(r); err != nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": user.Email})
}

func (h *Handler) requestReset(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	token, err := h.svc.RequestPasswordReset(r.Context(), email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		h.log.ErrorContext(r.Context(), "reset token request failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"email":       email,
		"reset_token": token,
	})
}

func (h *Handler) completeReset(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	token := r.FormValue("reset_token")
	newPassword := r.FormValue("new_password")

	if err := h.svc.CompletePasswordReset(r.Context(), token, newPassword); err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		h.log.ErrorContext(r.Context(), "password reset failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"email":   email,
		"message": "Password updated",
	})
}

func (h *Handler) currentUser(r *http.Request) (*auth.User, error) {
	cookie, err := r.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, auth.ErrNoSessionCookie
	}
	return h.svc.ResolveSession(r.Context(), cookie.Value)
}
