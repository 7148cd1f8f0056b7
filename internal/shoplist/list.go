// Package shoplist holds the article list of one shop while it is open:
// its order, the selection made on it and the bulk operations that act on
// either the selection or the whole list.
package shoplist

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dukerupert/shoplist/internal/model"
)

// ErrIndexOutOfRange is returned for positions outside the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// ArticleRepo is the persistence the list needs. *store.ArticleStore
// satisfies it.
type ArticleRepo interface {
	Create(shopID int64, name string, amount int, measure *string, strikethrough bool, priority int) (*model.Article, error)
	Update(a *model.Article) error
	Delete(id int64) error
	DeleteAll(shopID int64) (int64, error)
	GetAll(shopID int64) ([]model.Article, error)
}

// List is the in-memory, priority-ordered article list of one shop.
// Reordering stays in memory until Flush; every other mutation is written
// through to the repo immediately.
type List struct {
	repo     ArticleRepo
	shop     model.Shop
	articles []model.Article
	logger   *slog.Logger
}

// Load reads the shop's articles (renumbered by the repo) into a new List.
func Load(repo ArticleRepo, shop model.Shop, logger *slog.Logger) (*List, error) {
	if logger == nil {
		logger = slog.Default()
	}
	articles, err := repo.GetAll(shop.ID)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	logger.Debug("list loaded", "shop_id", shop.ID, "count", len(articles))
	return &List{repo: repo, shop: shop, articles: articles, logger: logger}, nil
}

func (l *List) Shop() model.Shop { return l.shop }

func (l *List) Len() int { return len(l.articles) }

// Articles returns a copy of the list in display order.
func (l *List) Articles() []model.Article {
	return slices.Clone(l.articles)
}

// At returns the article at index i.
func (l *List) At(i int) (model.Article, error) {
	if err := l.check(i); err != nil {
		return model.Article{}, err
	}
	return l.articles[i], nil
}

// IndexOf returns the position of the article with the given id, or -1.
func (l *List) IndexOf(id int64) int {
	return slices.IndexFunc(l.articles, func(a model.Article) bool { return a.ID == id })
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.articles) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(l.articles))
	}
	return nil
}

// Add appends a new article with priority equal to the current length.
func (l *List) Add(name string, amount int, measure *string) (model.Article, error) {
	return l.appendCopy(model.Article{Name: name, Amount: amount, Measure: measure})
}

// AddInput adds an article from raw user input. A blank name is rejected
// without touching the store (ok is false); a non-numeric amount becomes 1.
func (l *List) AddInput(name, amount, measure string) (a model.Article, ok bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Article{}, false, nil
	}
	a, err = l.Add(name, model.ParseAmount(amount), model.Measure(measure))
	if err != nil {
		return model.Article{}, false, err
	}
	return a, true, nil
}

// appendCopy creates a new row from a's fields at the end of the list.
func (l *List) appendCopy(a model.Article) (model.Article, error) {
	created, err := l.repo.Create(l.shop.ID, a.Name, a.Amount, a.Measure, a.Strikethrough, len(l.articles))
	if err != nil {
		return model.Article{}, err
	}
	l.articles = append(l.articles, *created)
	l.logger.Debug("article added", "shop_id", l.shop.ID, "article_id", created.ID, "priority", created.Priority)
	return *created, nil
}

// Reinsert recreates a removed article as a new row and places it at index
// at. at is clamped to [0, Len()].
func (l *List) Reinsert(a model.Article, at int) (model.Article, error) {
	at = max(0, min(at, len(l.articles)))
	created, err := l.repo.Create(l.shop.ID, a.Name, a.Amount, a.Measure, a.Strikethrough, a.Priority)
	if err != nil {
		return model.Article{}, err
	}
	l.articles = slices.Insert(l.articles, at, *created)
	l.logger.Debug("article reinserted", "shop_id", l.shop.ID, "article_id", created.ID, "old_id", a.ID, "index", at)
	return *created, nil
}

// Move drags the article at from to position to by swapping neighbours one
// step at a time. Nothing is persisted until Flush.
func (l *List) Move(from, to int) error {
	if err := l.check(from); err != nil {
		return err
	}
	if err := l.check(to); err != nil {
		return err
	}
	for i := from; i < to; i++ {
		l.articles[i], l.articles[i+1] = l.articles[i+1], l.articles[i]
	}
	for i := from; i > to; i-- {
		l.articles[i], l.articles[i-1] = l.articles[i-1], l.articles[i]
	}
	return nil
}

// Remove takes the article at index i out of the list and deletes its row.
func (l *List) Remove(i int) (model.Article, error) {
	if err := l.check(i); err != nil {
		return model.Article{}, err
	}
	a := l.articles[i]
	if err := l.repo.Delete(a.ID); err != nil {
		return model.Article{}, err
	}
	l.articles = slices.Delete(l.articles, i, i+1)
	l.logger.Debug("article removed", "shop_id", l.shop.ID, "article_id", a.ID, "index", i)
	return a, nil
}

// RemoveAll empties the list with a single store call and returns what was
// removed, in list order.
func (l *List) RemoveAll() ([]model.Article, error) {
	if _, err := l.repo.DeleteAll(l.shop.ID); err != nil {
		return nil, err
	}
	removed := l.articles
	l.articles = nil
	l.logger.Debug("all articles removed", "shop_id", l.shop.ID, "count", len(removed))
	return removed, nil
}

// SortByName orders the list by name using plain byte-wise string
// comparison. Equal names keep their relative order.
func (l *List) SortByName() {
	slices.SortStableFunc(l.articles, func(a, b model.Article) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// Edit changes name, amount and measure of the article at index i and
// persists it. A blank name leaves the article untouched (ok is false).
func (l *List) Edit(i int, name, amount, measure string) (a model.Article, ok bool, err error) {
	if err := l.check(i); err != nil {
		return model.Article{}, false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return l.articles[i], false, nil
	}
	edited := l.articles[i]
	edited.Name = name
	edited.Amount = model.ParseAmount(amount)
	edited.Measure = model.Measure(measure)
	if err := l.repo.Update(&edited); err != nil {
		return model.Article{}, false, err
	}
	l.articles[i] = edited
	return edited, true, nil
}

// ToggleStrikethrough flips the done marker of every listed article and
// persists each one. Unknown ids are skipped.
func (l *List) ToggleStrikethrough(ids []int64) error {
	for _, id := range ids {
		i := l.IndexOf(id)
		if i < 0 {
			continue
		}
		toggled := l.articles[i]
		toggled.Strikethrough = !toggled.Strikethrough
		if err := l.repo.Update(&toggled); err != nil {
			return err
		}
		l.articles[i] = toggled
	}
	return nil
}

// Flush sets every article's priority to its index and persists it, one
// update per article in index order.
func (l *List) Flush() error {
	for i := range l.articles {
		l.articles[i].Priority = i
		if err := l.repo.Update(&l.articles[i]); err != nil {
			return fmt.Errorf("flush article %d: %w", l.articles[i].ID, err)
		}
	}
	l.logger.Debug("list flushed", "shop_id", l.shop.ID, "count", len(l.articles))
	return nil
}
