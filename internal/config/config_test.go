package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/notes/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, BackendFile, cfg.Backend())
	assert.Equal(t, "notes", cfg.StorageKey())
	assert.Equal(t, 3*time.Second, cfg.HideDelay())
	assert.Equal(t, model.ColorWhite, cfg.DefaultColor())
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "  \n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "Redis"
key = "board"

[storage.redis]
addr = "10.0.0.5:6380"
db = 2

[ui]
theme = "NEON"
hide_delay = "750ms"
default_color = "yellow"

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Backend())
	assert.Equal(t, "board", cfg.StorageKey())
	assert.Equal(t, "10.0.0.5:6380", cfg.RedisAddr())
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, "notes:", cfg.RedisNamespace(), "unset keys keep defaults")
	assert.Equal(t, "neon", cfg.Theme())
	assert.Equal(t, 750*time.Millisecond, cfg.HideDelay())
	assert.Equal(t, model.ColorYellow, cfg.DefaultColor())
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"backend":  "[storage]\nbackend = \"s3\"\n",
		"delay":    "[ui]\nhide_delay = \"soon\"\n",
		"negative": "[ui]\nhide_delay = \"-1s\"\n",
		"color":    "[ui]\ndefault_color = \"mauve\"\n",
		"syntax":   "[storage\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestDataDirHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(homeEnvVar, dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	cfgPath, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfgPath)

	cfg := Default()
	bolt, err := cfg.BoltPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.db"), bolt)

	logFile, err := cfg.LogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.log"), logFile)
}

func TestStorageDirOverride(t *testing.T) {
	cfg := Default()
	cfg.Storage.Dir = "/var/lib/notes"
	dir, err := cfg.StorageDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/notes", dir)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = BackendBolt
	out, err := cfg.Encode()
	require.NoError(t, err)

	var back Config
	require.NoError(t, toml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}
