package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/universe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8091", cfg.Port)
	assert.Equal(t, "development", cfg.Env)

	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, 2, cfg.Database.MinConns)
	assert.Equal(t, time.Hour, cfg.Database.MaxConnLifetime)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.True(t, cfg.Redis.Enabled)

	assert.Equal(t, 20, cfg.Source.MaxPages)
	assert.Equal(t, 5.0, cfg.Source.RequestsPerSec)

	assert.Equal(t, 500_000_000.0, cfg.Selection.MinMarketCap)
	assert.Equal(t, 5_000_000.0, cfg.Selection.MinDollarVolume)
	assert.Equal(t, 500, cfg.Selection.TopN)
	assert.Equal(t, 1, cfg.Selection.MinTimeInUniverseDays)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/universe")
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("SELECTION_TOP_N", "100")
	t.Setenv("SOURCE_REQUESTS_PER_SEC", "2.5")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("DB_MAX_CONN_LIFETIME", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 100, cfg.Selection.TopN)
	assert.Equal(t, 2.5, cfg.Source.RequestsPerSec)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Database.MaxConnLifetime)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing database url",
			env:  map[string]string{},
		},
		{
			name: "bad env name",
			env: map[string]string{
				"DATABASE_URL": "postgres://localhost:5432/universe",
				"ENV":          "testing",
			},
		},
		{
			name: "negative top n",
			env: map[string]string{
				"DATABASE_URL":    "postgres://localhost:5432/universe",
				"SELECTION_TOP_N": "-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	t.Setenv("X_FLOAT", "nope")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.Equal(t, 1.5, getEnvAsFloat("X_FLOAT", 1.5))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsDuration("X_DUR", "1m"))
}
