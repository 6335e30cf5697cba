package config

import (
	"testing"

	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHESS_ADDR", "")
	t.Setenv("CHESS_ALLOWED_ORIGINS", "")
	t.Setenv("CHESS_LOG_LEVEL", "")
	t.Setenv("CHESS_STRICT", "")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, log.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.Strict)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":8080")
	t.Setenv("CHESS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CHESS_LOG_LEVEL", "DEBUG")
	t.Setenv("CHESS_STRICT", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, log.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.Strict)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":8080")
	t.Setenv("CHESS_STRICT", "true")

	cfg, err := Load([]string{"-addr", ":9090", "-strict=false", "-log-level", "warn"})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.False(t, cfg.Strict)
	assert.Equal(t, log.LevelWarn, cfg.LogLevel)
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Setenv("CHESS_LOG_LEVEL", "")

	_, err := Load([]string{"-log-level", "loud"})
	assert.Error(t, err)

	_, err = Load([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestBadStrictEnvFallsBack(t *testing.T) {
	t.Setenv("CHESS_STRICT", "sometimes")
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.False(t, cfg.Strict)
}
