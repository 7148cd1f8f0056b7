package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSettingNotFound is returned by Get for keys that were never set.
var ErrSettingNotFound = errors.New("setting not found")

// KeyCurrentShop holds the name of the shop picked last.
const KeyCurrentShop = "current_shop"

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("setting %q: %w", key, ErrSettingNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SettingsStore) GetAll() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("get all settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// CurrentShop returns the shop name handed off by the shop picker, or ""
// when none was picked yet.
func (s *SettingsStore) CurrentShop() (string, error) {
	name, err := s.Get(KeyCurrentShop)
	if errors.Is(err, ErrSettingNotFound) {
		return "", nil
	}
	return name, err
}

func (s *SettingsStore) SetCurrentShop(name string) error {
	return s.Set(KeyCurrentShop, name)
}
