package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int      `env:"LSR_TEST_PORT" envDefault:"8000"`
	Secret   string   `env:"LSR_TEST_SECRET" envDefault:"dev-secret-change-me"`
	TTLMin   int      `env:"LSR_TEST_TTL_MIN" envDefault:"60"`
	Origins  []string `env:"LSR_TEST_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	UseRedis bool     `env:"LSR_TEST_REDIS" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "dev-secret-change-me", cfg.Secret)
	assert.Equal(t, 60, cfg.TTLMin)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Origins)
	assert.False(t, cfg.UseRedis)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("LSR_TEST_PORT", "9090")
	t.Setenv("LSR_TEST_SECRET", "prod-secret")
	t.Setenv("LSR_TEST_ORIGINS", "https://lsresort.studio,http://localhost:3000")
	t.Setenv("LSR_TEST_REDIS", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "prod-secret", cfg.Secret)
	assert.Equal(t, []string{"https://lsresort.studio", "http://localhost:3000"}, cfg.Origins)
	assert.True(t, cfg.UseRedis)
}

type requiredConfig struct {
	DatabaseURL string `env:"LSR_TEST_DATABASE_URL,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
	assert.Contains(t, err.Error(), "LSR_TEST_DATABASE_URL")
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("LSR_TEST_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_ReportsEveryInvalidVariable(t *testing.T) {
	t.Setenv("LSR_TEST_PORT", "eighty")
	t.Setenv("LSR_TEST_TTL_MIN", "an-hour")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Port"`)
	assert.Contains(t, err.Error(), `"TTLMin"`)
}
