package auth

import (
	"context"
	"net/http"
	"strings"
)

// Strategy is a pluggable algorithm for turning request credentials into an
// identified user or a denial.
type Strategy interface {
	// RequireAuth reports whether path needs authentication given the
	// configured exclusion patterns.
	RequireAuth(path string, excludedPaths []string) bool

	// CurrentUser resolves the request to the authenticated user.
	CurrentUser(ctx context.Context, r *http.Request) (*User, error)
}

// NoAuth is the baseline strategy: no path requires authentication and no
// request ever resolves to a user.
type NoAuth struct{}

func (NoAuth) RequireAuth(string, []string) bool { return false }

func (NoAuth) CurrentUser(context.Context, *http.Request) (*User, error) {
	return nil, ErrUnauthorized
}

// requireAuth is the exclusion-pattern matching shared by the Basic and
// Session strategies. A pattern ending in "*" is a prefix match, a pattern
// ending in "/" matches the directory with or without the slash, and a bare
// pattern matches exactly with an optional trailing slash. The first
// matching pattern wins; no match means authentication is required.
func requireAuth(path string, excludedPaths []string) bool {
	if path == "" {
		return true
	}
	for _, pattern := range excludedPaths {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if matchExcluded(path, pattern) {
			return false
		}
	}
	return true
}

func matchExcluded(path, pattern string) bool {
	switch {
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	case strings.HasSuffix(pattern, "/"):
		return path == pattern || path == strings.TrimSuffix(pattern, "/")
	default:
		return path == pattern || path == pattern+"/"
	}
}
