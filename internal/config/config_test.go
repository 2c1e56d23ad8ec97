package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CHESSCTL_TOKEN_STORE", "")
	t.Setenv("CHESSCTL_HTTP_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("STUBSERVER_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, TokenStoreKeyring, cfg.Client.TokenStore)
	assert.Zero(t, cfg.Client.HTTPTimeout)
	assert.Equal(t, ":8080", cfg.StubServer.Address)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CHESSCTL_TOKEN_STORE", "Memory")
	t.Setenv("CHESSCTL_HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("STUBSERVER_ADDR", "127.0.0.1:9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, TokenStoreMemory, cfg.Client.TokenStore)
	assert.Equal(t, 5*time.Second, cfg.Client.HTTPTimeout)
	assert.Equal(t, "127.0.0.1:9090", cfg.StubServer.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("token store", func(t *testing.T) {
		t.Setenv("CHESSCTL_TOKEN_STORE", "file")
		t.Setenv("CHESSCTL_HTTP_TIMEOUT", "")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CHESSCTL_TOKEN_STORE")
	})

	t.Run("timeout", func(t *testing.T) {
		t.Setenv("CHESSCTL_TOKEN_STORE", "")
		t.Setenv("CHESSCTL_HTTP_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CHESSCTL_HTTP_TIMEOUT")
	})

	t.Run("negative timeout", func(t *testing.T) {
		t.Setenv("CHESSCTL_TOKEN_STORE", "")
		t.Setenv("CHESSCTL_HTTP_TIMEOUT", "-1s")
		_, err := Load()
		require.Error(t, err)
	})
}
