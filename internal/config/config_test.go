package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, "./public", cfg.StaticPath)
	assert.Equal(t, int64(32768), cfg.ReadLimit)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
}

func TestLoadPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "4567")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4567, cfg.Port)
}
