package session

import (
	"strconv"
	"strings"
	"time"
)

// Config holds session settings read from the environment.
type Config struct {
	// CookieName is the cookie carrying the opaque session id. There is no
	// universal default, so deployments must set it explicitly.
	CookieName string `env:"SESSION_COOKIE_NAME,required"`

	// Duration is the session lifetime in seconds. It is kept as a string
	// so unparsable values degrade to "never expires" instead of failing
	// startup.
	Duration string `env:"SESSION_DURATION" envDefault:"0"`
}

// TTL converts Duration to a time.Duration. Absent, malformed, zero or
// negative values yield 0, which disables expiration.
func (c Config) TTL() time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(c.Duration))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
