package store

import (
	"errors"
	"testing"
)

func setupSettingsTestDB(t *testing.T) *SettingsStore {
	t.Helper()
	return NewSettingsStore(setupTestDB(t))
}

func TestSettingsGetNotFound(t *testing.T) {
	ss := setupSettingsTestDB(t)

	_, err := ss.Get("nonexistent_key")
	if !errors.Is(err, ErrSettingNotFound) {
		t.Fatalf("err = %v, want ErrSettingNotFound", err)
	}
}

func TestSettingsSet(t *testing.T) {
	ss := setupSettingsTestDB(t)

	if err := ss.Set("theme", "neon"); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, err := ss.Get("theme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != "neon" {
		t.Errorf("theme = %q, want %q", val, "neon")
	}

	// Overwrite existing
	if err := ss.Set("theme", "mono"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	val, _ = ss.Get("theme")
	if val != "mono" {
		t.Errorf("theme = %q, want %q", val, "mono")
	}
}

func TestSettingsGetAll(t *testing.T) {
	ss := setupSettingsTestDB(t)

	ss.Set("b", "2")
	ss.Set("a", "1")

	all, err := ss.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(all))
	}
	if all["a"] != "1" || all["b"] != "2" {
		t.Errorf("settings = %v", all)
	}
}

func TestSettingsCurrentShop(t *testing.T) {
	ss := setupSettingsTestDB(t)

	name, err := ss.CurrentShop()
	if err != nil {
		t.Fatalf("current shop: %v", err)
	}
	if name != "" {
		t.Errorf("current shop = %q, want empty before hand-off", name)
	}

	if err := ss.SetCurrentShop("Colruyt"); err != nil {
		t.Fatalf("set current shop: %v", err)
	}
	name, err = ss.CurrentShop()
	if err != nil {
		t.Fatalf("current shop: %v", err)
	}
	if name != "Colruyt" {
		t.Errorf("current shop = %q, want %q", name, "Colruyt")
	}
}
