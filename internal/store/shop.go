package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dukerupert/shoplist/internal/model"
)

// ErrEmptyShopName is returned when a shop is referenced by a blank name.
var ErrEmptyShopName = errors.New("shop name is empty")

type ShopStore struct {
	db *sql.DB
}

func NewShopStore(db *sql.DB) *ShopStore {
	return &ShopStore{db: db}
}

func scanShop(scanner interface{ Scan(...any) error }) (*model.Shop, error) {
	var s model.Shop
	err := scanner.Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const shopCols = `id, name, created_at`

func (s *ShopStore) GetByID(id int64) (*model.Shop, error) {
	row := s.db.QueryRow(`SELECT `+shopCols+` FROM shops WHERE id = ?`, id)
	shop, err := scanShop(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return shop, nil
}

func (s *ShopStore) GetByName(name string) (*model.Shop, error) {
	row := s.db.QueryRow(`SELECT `+shopCols+` FROM shops WHERE name = ?`, name)
	shop, err := scanShop(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shop by name: %w", err)
	}
	return shop, nil
}

// GetOrCreate returns the shop with exactly this name, inserting it first
// if it does not exist yet.
func (s *ShopStore) GetOrCreate(name string) (*model.Shop, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyShopName
	}

	shop, err := s.GetByName(name)
	if err != nil || shop != nil {
		return shop, err
	}

	result, err := s.db.Exec(`INSERT INTO shops (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// EnsureShops get-or-creates every named shop, skipping blank names.
func (s *ShopStore) EnsureShops(names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := s.GetOrCreate(name); err != nil {
			return err
		}
	}
	return nil
}

func (s *ShopStore) List() ([]model.Shop, error) {
	rows, err := s.db.Query(`SELECT ` + shopCols + ` FROM shops ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	var shops []model.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		shops = append(shops, *shop)
	}
	return shops, rows.Err()
}
