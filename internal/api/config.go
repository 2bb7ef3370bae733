package api

// Config selects the authentication strategy and the paths it skips.
//
// AUTH_TYPE accepts "basic_auth", "session_auth", "session_exp_auth" and
// "none". The registration, login and password reset endpoints must stay
// excluded or nobody could ever obtain credentials.
type Config struct {
	AuthType      string   `env:"AUTH_TYPE" envDefault:"session_exp_auth"`
	ExcludedPaths []string `env:"AUTH_EXCLUDED_PATHS" envSeparator:"," envDefault:"/,/status,/users,/sessions,/reset_password"`
}
