// Package logger builds configured slog loggers and provides the attribute
// helpers used across the codebase.
//
// The factory supports JSON (production) and text (development) output,
// static attributes, and PII redaction: attribute keys registered with
// WithRedaction are masked in every record before they reach the output
// handler, including inside groups. An auth service logs emails, session
// ids and reset tokens at its peril; redaction makes the safe thing the
// easy thing.
//
//	log := logger.New(
//	    logger.WithAttr(slog.String("service", "authd")),
//	    logger.WithRedaction("email", "password", "session_id", "reset_token"),
//	)
package logger
