package redis

import "errors"

var (
	// ErrEmptyConnectionURL means REDIS_URL was not set; callers decide
	// whether that is fatal or a signal to fall back to in-memory storage.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")

	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready in time")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)
