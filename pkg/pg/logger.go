package pg

import "context"

// logger is the slice of slog.Logger the migrator needs. Declared locally so
// callers can pass *slog.Logger or any compatible implementation.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
