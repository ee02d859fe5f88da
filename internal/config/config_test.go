package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 4001, cfg.Server.Port)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigin)
	assert.Equal(t, 5*time.Minute, cfg.Stream.Retention)
	assert.Equal(t, 5*time.Minute, cfg.Stream.ReapInterval)
	assert.Equal(t, 60*time.Second, cfg.WebSocket.PongWait)
	assert.False(t, cfg.Redis.MarketEventsEnabled)
	assert.False(t, cfg.Kafka.AuditEnabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "5005")
	t.Setenv("SOCKET_CORS_ORIGIN", "https://streamer.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5005, cfg.Server.Port)
	assert.Equal(t, "https://streamer.example", cfg.CORS.AllowedOrigin)
}
