// Package auth is a credential-and-session authentication layer fronting a
// user store.
//
// It has two faces. The Service facade owns the account lifecycle:
// registration, login and logout, session resolution, and the one-time
// password-reset token flow. The Strategy interface turns an inbound HTTP
// request into an identified user by one of several interchangeable
// mechanisms:
//
//   - NoAuth denies everything and requires nothing.
//   - BasicAuth reads "Authorization: Basic <base64(email:password)>".
//   - SessionAuth reads the session id cookie and resolves it without a
//     time limit.
//   - SessionExpAuth does the same but rejects sessions older than the
//     configured SESSION_DURATION.
//
// Strategies share one exclusion-pattern matcher for deciding whether a
// path needs authentication at all, and the Middleware helper wires a
// strategy into a chi (or any net/http) handler chain.
//
// Persistence stays behind the UserStore interface; the session token
// lifecycle lives in pkg/session. Nothing in this package panics on bad
// input: malformed headers, unknown tokens and expired sessions are all
// ordinary negative results.
package auth
