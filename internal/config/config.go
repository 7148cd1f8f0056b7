// Package config loads shoplist settings from the environment, optionally
// seeded from a .env file. Every key is read with the SHOPLIST_ prefix.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SHOPLIST"

type Config struct {
	// DBPath is the SQLite database file.
	DBPath string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFile receives logs while the interactive list is on screen.
	LogFile string
	// BackupDir holds encrypted database snapshots.
	BackupDir string
	// BackupPassphrase encrypts snapshots. Backup and restore refuse to
	// run without one.
	BackupPassphrase string
	// Shops are created on startup so the picker always offers them.
	Shops []string
	// Theme is "classic", "neon" or "mono".
	Theme string
}

// Load reads envFiles (missing files are ignored; real environment
// variables win) and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("db_path", "shoplist.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "shoplist.log")
	v.SetDefault("backup_dir", "backups")
	v.SetDefault("backup_passphrase", "")
	v.SetDefault("shops", "Carrefour,Colruyt,Spar")
	v.SetDefault("theme", "classic")

	cfg := &Config{
		DBPath:           v.GetString("db_path"),
		LogLevel:         v.GetString("log_level"),
		LogFile:          v.GetString("log_file"),
		BackupDir:        v.GetString("backup_dir"),
		BackupPassphrase: v.GetString("backup_passphrase"),
		Shops:            splitList(v.GetString("shops")),
		Theme:            strings.ToLower(v.GetString("theme")),
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
