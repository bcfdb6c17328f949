package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Game.StrictEffects)
	assert.Equal(t, 2*time.Minute, cfg.Game.PendingTTL)
	assert.Zero(t, cfg.Game.Seed)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Database.Driver)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9090"
database:
  driver: sqlite
  path: /tmp/k.db
logging:
  level: debug
  format: console
game:
  strict_effects: true
  pending_ttl: 45s
  seed: 7
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/k.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Game.StrictEffects)
	assert.Equal(t, 45*time.Second, cfg.Game.PendingTTL)
	assert.Equal(t, int64(7), cfg.Game.Seed)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KRUTAGIDON_SERVER_ADDRESS", ":7070")
	t.Setenv("KRUTAGIDON_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("KRUTAGIDON_DATABASE_DRIVER", "oracle")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadPostgresRequiresDSN(t *testing.T) {
	t.Setenv("KRUTAGIDON_DATABASE_DRIVER", "postgres")

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("KRUTAGIDON_DATABASE_DSN", "postgres://localhost/krutagidon")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}
