// Package redis dials and health-checks the Redis server backing the
// distributed session store. Connection details come from REDIS_URL; when the
// variable is unset the caller is expected to fall back to in-memory storage.
package redis
