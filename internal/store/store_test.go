package store

import (
	"database/sql"
	"testing"

	"github.com/dukerupert/shoplist/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupArticleTestDB(t *testing.T) (*ArticleStore, *ShopStore) {
	t.Helper()
	db := setupTestDB(t)
	return NewArticleStore(db), NewShopStore(db)
}

func strPtr(s string) *string { return &s }
