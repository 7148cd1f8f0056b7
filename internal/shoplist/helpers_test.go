package shoplist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukerupert/shoplist/internal/database"
	"github.com/dukerupert/shoplist/internal/model"
	"github.com/dukerupert/shoplist/internal/store"
)

// setupList opens an in-memory database, seeds the shop with the given
// articles in order and loads it.
func setupList(t *testing.T, seed ...model.Article) (*List, *store.ArticleStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	shop, err := store.NewShopStore(db).GetOrCreate("Carrefour")
	require.NoError(t, err)

	as := store.NewArticleStore(db)
	for i, a := range seed {
		_, err := as.Create(shop.ID, a.Name, a.Amount, a.Measure, a.Strikethrough, i)
		require.NoError(t, err)
	}

	l, err := Load(as, *shop, nil)
	require.NoError(t, err)
	return l, as
}

func art(name string, amount int, measure string) model.Article {
	return model.Article{Name: name, Amount: amount, Measure: model.Measure(measure)}
}

func names(articles []model.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Name
	}
	return out
}

// reload reads the shop's list back from the store.
func reload(t *testing.T, l *List, as *store.ArticleStore) []model.Article {
	t.Helper()
	got, err := as.GetAll(l.Shop().ID)
	require.NoError(t, err)
	return got
}

var errStore = errors.New("disk on fire")

// failingRepo wraps a real repo and fails Delete/Create after a number of
// successful calls.
type failingRepo struct {
	ArticleRepo
	deletesLeft int
	createsLeft int
}

func (f *failingRepo) Delete(id int64) error {
	if f.deletesLeft == 0 {
		return errStore
	}
	f.deletesLeft--
	return f.ArticleRepo.Delete(id)
}

func (f *failingRepo) Create(shopID int64, name string, amount int, measure *string, strikethrough bool, priority int) (*model.Article, error) {
	if f.createsLeft == 0 {
		return nil, errStore
	}
	f.createsLeft--
	return f.ArticleRepo.Create(shopID, name, amount, measure, strikethrough, priority)
}
