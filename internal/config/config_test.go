package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "shoplist.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "shoplist.log", cfg.LogFile)
	assert.Equal(t, "backups", cfg.BackupDir)
	assert.Equal(t, []string{"Carrefour", "Colruyt", "Spar"}, cfg.Shops)
	assert.Equal(t, "classic", cfg.Theme)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SHOPLIST_DB_PATH", "/tmp/list.db")
	t.Setenv("SHOPLIST_LOG_LEVEL", "debug")
	t.Setenv("SHOPLIST_SHOPS", " Aldi , ,Lidl")
	t.Setenv("SHOPLIST_THEME", "NEON")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/list.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"Aldi", "Lidl"}, cfg.Shops)
	assert.Equal(t, "neon", cfg.Theme)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "SHOPLIST_BACKUP_DIR=/var/backups/shoplist\nSHOPLIST_LOG_FILE=from-file.log\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	// Real environment takes precedence over the file.
	t.Setenv("SHOPLIST_LOG_FILE", "from-env.log")
	t.Cleanup(func() { os.Unsetenv("SHOPLIST_BACKUP_DIR") })

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "/var/backups/shoplist", cfg.BackupDir)
	assert.Equal(t, "from-env.log", cfg.LogFile)
}
