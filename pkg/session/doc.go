// Package session owns the lifecycle of opaque session tokens: creation,
// lookup with optional time-to-live, and destruction.
//
// The model is one active session per user. Creating a session does not
// evict prior ones by itself; callers that want supersession destroy the
// user's sessions first (the auth service does exactly that on login).
//
// Expiration is evaluated lazily on Resolve. A ttl of zero or less means
// the session never expires; otherwise a record is honored up to and
// including the instant created_at+ttl and rejected strictly after it.
//
// Two backends ship with the package: MemoryStore for single-process
// deployments and tests, and RedisStore for deployments that need sessions
// to outlive the process.
package session
