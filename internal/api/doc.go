// Package api assembles the HTTP surface of the service: account
// registration, session login and logout, profile lookup, and the password
// reset flow. Route protection is delegated to the auth middleware with a
// strategy chosen at startup via AUTH_TYPE.
package api
