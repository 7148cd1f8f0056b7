package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/shoplist/internal/model"
)

type ArticleStore struct {
	db *sql.DB
}

func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

func scanArticle(scanner interface{ Scan(...any) error }) (*model.Article, error) {
	var a model.Article
	var measure sql.NullString
	var strikethrough int

	err := scanner.Scan(&a.ID, &a.ShopID, &a.Name, &a.Amount, &measure, &strikethrough, &a.Priority)
	if err != nil {
		return nil, err
	}

	a.Strikethrough = strikethrough != 0
	if measure.Valid {
		a.Measure = &measure.String
	}
	return &a, nil
}

const articleCols = `id, shop_id, name, amount, measure, strikethrough, priority`

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *ArticleStore) GetByID(id int64) (*model.Article, error) {
	row := s.db.QueryRow(`SELECT `+articleCols+` FROM articles WHERE id = ?`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// Create inserts an article and returns it as persisted. Amounts below
// model.MinAmount are stored as model.MinAmount.
func (s *ArticleStore) Create(shopID int64, name string, amount int, measure *string, strikethrough bool, priority int) (*model.Article, error) {
	result, err := s.db.Exec(
		`INSERT INTO articles (shop_id, name, amount, measure, strikethrough, priority) VALUES (?, ?, ?, ?, ?, ?)`,
		shopID, name, model.ClampAmount(amount), nullString(measure), boolInt(strikethrough), priority,
	)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	a, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("reread article %d: not found", id)
	}
	return a, nil
}

// Update writes every mutable field of a. The amount is clamped the same
// way Create clamps it.
func (s *ArticleStore) Update(a *model.Article) error {
	_, err := s.db.Exec(
		`UPDATE articles SET name = ?, amount = ?, measure = ?, strikethrough = ?, priority = ? WHERE id = ?`,
		a.Name, model.ClampAmount(a.Amount), nullString(a.Measure), boolInt(a.Strikethrough), a.Priority, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// Delete removes the article with the given id. Deleting an id that is
// already gone is not an error.
func (s *ArticleStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func (s *ArticleStore) DeleteAll(shopID int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM articles WHERE shop_id = ?`, shopID)
	if err != nil {
		return 0, fmt.Errorf("delete all articles: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func (s *ArticleStore) Count(shopID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE shop_id = ?`, shopID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// GetAll returns the shop's articles ordered by priority and renumbers
// them so priorities run 0..n-1 in that order. Rows whose priority already
// matches their index are not rewritten.
func (s *ArticleStore) GetAll(shopID int64) ([]model.Article, error) {
	articles, err := s.listByPriority(shopID)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		if articles[i].Priority == i {
			continue
		}
		articles[i].Priority = i
		if err := s.Update(&articles[i]); err != nil {
			return nil, fmt.Errorf("renumber article %d: %w", articles[i].ID, err)
		}
	}
	return articles, nil
}

// listByPriority reads all rows before returning so callers can write
// while holding the result.
func (s *ArticleStore) listByPriority(shopID int64) ([]model.Article, error) {
	rows, err := s.db.Query(
		`SELECT `+articleCols+` FROM articles WHERE shop_id = ? ORDER BY priority ASC, id ASC`,
		shopID,
	)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}
