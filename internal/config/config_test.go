package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "courseway", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "courseway.course.events", cfg.RabbitMQ.ExchangeName.CourseEvents)
	assert.Equal(t, "course.generated", cfg.RabbitMQ.RoutingKey.CourseGenerated)
	assert.Equal(t, "cw_", cfg.Auth.KeyPrefix)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COURSEWAY_SERVER_ADDR", ":9090")
	t.Setenv("COURSEWAY_LOG_LEVEL", "debug")
	t.Setenv("COURSEWAY_REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("COURSEWAY_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("sample ratio above one", func(t *testing.T) {
		t.Setenv("COURSEWAY_TELEMETRY_SAMPLE_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
