// Package backup writes passphrase-encrypted snapshots of the shopping list
// database to a local directory and restores them.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dukerupert/shoplist/internal/database"
)

const (
	filePrefix = "shoplist-"
	fileSuffix = ".db.enc"
)

// Create snapshots db and writes it encrypted to
// dir/shoplist-<UTC timestamp>.db.enc, returning the file path.
func Create(ctx context.Context, db *sql.DB, dir, passphrase string) (string, error) {
	if passphrase == "" {
		return "", fmt.Errorf("backup passphrase is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "shoplist-backup-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "snapshot.db")
	if err := database.Snapshot(ctx, db, snapshot); err != nil {
		return "", err
	}
	plaintext, err := os.ReadFile(snapshot)
	if err != nil {
		return "", fmt.Errorf("read snapshot: %w", err)
	}

	sealed, err := Encrypt(plaintext, passphrase)
	if err != nil {
		return "", err
	}

	timestamp := time.Now().UTC().Format("2006-01-02T150405.000Z")
	dst := filepath.Join(dir, filePrefix+timestamp+fileSuffix)
	if err := os.WriteFile(dst, sealed, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	slog.Info("backup written", "path", dst, "size", len(sealed))
	return dst, nil
}

// Restore decrypts the backup at src, checks that it is a sound SQLite
// database and writes it to dst. The session owning dst must be closed.
func Restore(src, dst, passphrase string) error {
	sealed, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	plaintext, err := Decrypt(sealed, passphrase)
	if err != nil {
		return err
	}

	tmp := dst + ".restore"
	if err := os.WriteFile(tmp, plaintext, 0o600); err != nil {
		return fmt.Errorf("write restored db: %w", err)
	}
	if err := database.IntegrityCheck(tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	os.Remove(dst + "-wal")
	os.Remove(dst + "-shm")
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace database: %w", err)
	}
	slog.Info("backup restored", "from", src, "to", dst)
	return nil
}

// List returns the backup files in dir, newest first.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	// Timestamps sort lexically.
	slices.Sort(files)
	slices.Reverse(files)
	return files, nil
}
