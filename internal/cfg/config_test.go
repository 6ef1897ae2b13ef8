package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("HOST", "")
	t.Setenv("BODY_LIMIT", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")

	config, err := NewConfig(GatewayPort)
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, ":8080", config.Addr())
	assert.Equal(t, int64(100<<10), config.BodyLimit)
	assert.Equal(t, 10*time.Second, config.ShutdownTimeout)
	assert.Equal(t, "info", config.Logger.Level)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("BODY_LIMIT", "2048")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")
	t.Setenv("LOGGER_LEVEL", "debug")

	config, err := NewConfig(SinkPort)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", config.Addr())
	assert.Equal(t, int64(2048), config.BodyLimit)
	assert.Equal(t, 3*time.Second, config.ShutdownTimeout)
	assert.Equal(t, "debug", config.Logger.Level)
}

func TestNewAgentConfig(t *testing.T) {
	t.Setenv("SINK_ADDRESS", "")
	t.Setenv("GATEWAY_ADDRESS", "localhost:8080")
	t.Setenv("POLL_INTERVAL", "5")
	t.Setenv("REPORT_INTERVAL", "250ms")

	config, err := NewAgentConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9090", config.SinkAddress)
	assert.Equal(t, "localhost:8080", config.GatewayAddress)
	assert.Equal(t, 5*time.Second, config.PollInterval)
	assert.Equal(t, 250*time.Millisecond, config.ReportInterval)
}
