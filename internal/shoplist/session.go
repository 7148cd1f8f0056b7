package shoplist

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukerupert/shoplist/internal/database"
	"github.com/dukerupert/shoplist/internal/model"
	"github.com/dukerupert/shoplist/internal/store"
)

// Session owns the database connection while one shop's list is open.
// Close flushes the list order and releases the connection.
type Session struct {
	db        *sql.DB
	Shops     *store.ShopStore
	Articles  *store.ArticleStore
	Settings  *store.SettingsStore
	Shop      model.Shop
	List      *List
	Selection *Selection

	logger *slog.Logger
	closed bool
}

// OpenSession opens the database at dbPath, get-or-creates the named shop
// and loads its list. The stored current shop is left alone. onMode is passed to
// the session's Selection.
func OpenSession(dbPath, shopName string, onMode func(Mode), logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}
	s, err := NewSession(db, shopName, onMode, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSession is OpenSession over an already open database. The session
// takes ownership of db; on error the caller still has to close it.
func NewSession(db *sql.DB, shopName string, onMode func(Mode), logger *slog.Logger) (*Session, error) {
	s := &Session{
		db:        db,
		Shops:     store.NewShopStore(db),
		Articles:  store.NewArticleStore(db),
		Settings:  store.NewSettingsStore(db),
		Selection: NewSelection(onMode),
		logger:    logger,
	}

	shop, err := s.Shops.GetOrCreate(shopName)
	if err != nil {
		return nil, fmt.Errorf("get shop %q: %w", shopName, err)
	}
	s.Shop = *shop

	s.List, err = Load(s.Articles, s.Shop, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("session opened", "shop", shop.Name, "articles", s.List.Len())
	return s, nil
}

// DB exposes the session's connection for snapshots.
func (s *Session) DB() *sql.DB { return s.db }

// Close flushes the list order and closes the database. Calling it more
// than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	flushErr := s.List.Flush()
	closeErr := s.db.Close()
	if flushErr != nil || closeErr != nil {
		return errors.Join(flushErr, closeErr)
	}
	s.logger.Debug("session closed", "shop", s.Shop.Name)
	return nil
}
