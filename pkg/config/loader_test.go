package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/config"
)

type sessionEnv struct {
	CookieName string `env:"CFG_TEST_COOKIE" envDefault:"_my_session_id"`
	Duration   string `env:"CFG_TEST_DURATION" envDefault:"0"`
}

type requiredEnv struct {
	DatabaseURL string `env:"CFG_TEST_DATABASE_URL,required"`
}

type cachedEnv struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"fallback"`
}

func TestLoad(t *testing.T) {
	t.Cleanup(config.Reset)

	t.Setenv("CFG_TEST_COOKIE", "_session_id")
	t.Setenv("CFG_TEST_DURATION", "60")

	var cfg sessionEnv
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "_session_id", cfg.CookieName)
	assert.Equal(t, "60", cfg.Duration)
}

func TestLoad_Defaults(t *testing.T) {
	t.Cleanup(config.Reset)

	os.Unsetenv("CFG_TEST_COOKIE")
	os.Unsetenv("CFG_TEST_DURATION")

	var cfg sessionEnv
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "_my_session_id", cfg.CookieName)
	assert.Equal(t, "0", cfg.Duration)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Cleanup(config.Reset)

	os.Unsetenv("CFG_TEST_DATABASE_URL")

	var cfg requiredEnv
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Cleanup(config.Reset)

	t.Setenv("CFG_TEST_CACHED", "first")

	var first cachedEnv
	require.NoError(t, config.Load(&first))

	t.Setenv("CFG_TEST_CACHED", "second")

	var second cachedEnv
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *sessionEnv
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}
