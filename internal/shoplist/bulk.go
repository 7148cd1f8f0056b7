package shoplist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dukerupert/shoplist/internal/model"
)

// Scope tells what a removal acted on.
type Scope int

const (
	ScopeNothing Scope = iota
	ScopeOne
	ScopeSelection
	ScopeAll
)

// Removal records removed articles so the removal can be undone.
type Removal struct {
	Scope Scope
	// Articles are in ascending original-index order.
	Articles []model.Article
	// Index is the original position when Scope is ScopeOne.
	Index int
}

// Empty reports the "nothing to remove" outcome.
func (r Removal) Empty() bool { return len(r.Articles) == 0 }

// Message is the user-facing outcome text.
func (r Removal) Message(shop string) string {
	switch {
	case r.Empty():
		return "Nothing to remove"
	case r.Scope == ScopeOne:
		return fmt.Sprintf("Removed %q", r.Articles[0].Name)
	case r.Scope == ScopeAll:
		return "Removed all articles from " + shop
	case len(r.Articles) == 1:
		return "Removed 1 article"
	default:
		return fmt.Sprintf("Removed %d articles", len(r.Articles))
	}
}

// RemoveOne removes the article at index i. Undoing it puts the article back
// at the same index.
func RemoveOne(l *List, i int) (Removal, error) {
	a, err := l.Remove(i)
	if err != nil {
		return Removal{}, err
	}
	return Removal{Scope: ScopeOne, Articles: []model.Article{a}, Index: i}, nil
}

// RemoveSelectedOrAll removes the selected articles, or the whole list when
// nothing is selected. Selected articles are removed from the highest index
// down so earlier positions stay valid. The selection is cleared afterwards.
//
// If a store call fails, removal stops there; the returned Removal still
// holds what was already removed so it can be undone.
func RemoveSelectedOrAll(l *List, sel *Selection) (Removal, error) {
	if sel.Empty() {
		if l.Len() == 0 {
			return Removal{Scope: ScopeNothing}, nil
		}
		removed, err := l.RemoveAll()
		if err != nil {
			return Removal{Scope: ScopeNothing}, err
		}
		return Removal{Scope: ScopeAll, Articles: removed}, nil
	}

	var indices []int
	for _, id := range sel.IDs() {
		if i := l.IndexOf(id); i >= 0 {
			indices = append(indices, i)
		}
	}
	slices.Sort(indices)

	removal := Removal{Scope: ScopeSelection}
	removed := make([]model.Article, 0, len(indices))
	var err error
	for k := len(indices) - 1; k >= 0; k-- {
		var a model.Article
		a, err = l.Remove(indices[k])
		if err != nil {
			break
		}
		removed = append(removed, a)
	}
	slices.Reverse(removed)
	removal.Articles = removed
	if len(removed) == 0 {
		removal.Scope = ScopeNothing
	}
	sel.Clear()
	return removal, err
}

// Undo brings back the articles of r. A single removal goes back to its
// original index; bulk removals are appended to the end of the list in
// their original relative order. Restored articles get new ids.
//
// Restoring stops at the first store failure; the articles restored so far
// are returned with the error.
func Undo(l *List, r Removal) ([]model.Article, error) {
	if r.Scope == ScopeOne && len(r.Articles) == 1 {
		a, err := l.Reinsert(r.Articles[0], r.Index)
		if err != nil {
			return nil, err
		}
		return []model.Article{a}, nil
	}
	return UndoRemoval(r.Articles, l)
}

// UndoRemoval re-adds each backed-up article at the end of the list, in
// backup order.
func UndoRemoval(backup []model.Article, l *List) ([]model.Article, error) {
	restored := make([]model.Article, 0, len(backup))
	for _, a := range backup {
		created, err := l.appendCopy(a)
		if err != nil {
			return restored, err
		}
		restored = append(restored, created)
	}
	return restored, nil
}

// ExportText renders the selected articles in selection order, or the whole
// list when nothing is selected, one article per line. ok is false when
// there is nothing to export.
func ExportText(l *List, sel *Selection) (text string, ok bool) {
	var lines []string
	if !sel.Empty() {
		for _, id := range sel.IDs() {
			if i := l.IndexOf(id); i >= 0 {
				lines = append(lines, l.articles[i].String())
			}
		}
	} else {
		for _, a := range l.articles {
			lines = append(lines, a.String())
		}
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// ExportMessage is the user-facing outcome text of an export of n lines.
func ExportMessage(n int) string {
	switch n {
	case 0:
		return "Nothing to copy"
	case 1:
		return "Copied 1 article to the clipboard"
	default:
		return fmt.Sprintf("Copied %d articles to the clipboard", n)
	}
}
