package shoplist

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dukerupert/shoplist/internal/model"
)

// AisleOther collects articles no keyword matches.
const AisleOther = "Other"

// aisles maps each aisle to its keywords. The longest matching keyword wins
// so "ice cream" beats "cream" and "eggplant" beats "egg"; on a tie the
// earlier aisle wins.
var aisles = []struct {
	name     string
	keywords []string
}{
	{"Frozen", []string{"ice cream", "frozen", "ijs", "diepvries"}},
	{"Bakery", []string{"croissant", "baguette", "bagel", "bread", "brood", "pistolet", "buns", "bun", "cake", "taart"}},
	{"Dairy", []string{"yoghurt", "yogurt", "cheese", "butter", "cream", "kaas", "melk", "boter", "milk", "eggs", "egg", "eieren", "room"}},
	{"Meat & Fish", []string{"chicken", "salmon", "sausage", "bacon", "beef", "pork", "tuna", "ham", "kip", "vlees", "vis", "gehakt"}},
	{"Produce", []string{"tomato", "potato", "banana", "lettuce", "carrot", "onion", "apple", "lemon", "pear", "fruit", "grape", "eggplant", "aubergine", "butternut", "zucchini", "courgette", "salad", "sla", "appel", "peer", "wortel", "ui"}},
	{"Drinks", []string{"sparkling", "coffee", "juice", "water", "wine", "beer", "soda", "koffie", "thee", "tea", "sap", "bier", "wijn", "cola"}},
	{"Pantry", []string{"pasta", "flour", "sugar", "beans", "rice", "oil", "salt", "soup", "rijst", "bloem", "suiker", "olie", "zout", "soep", "choco"}},
	{"Household", []string{"toilet paper", "detergent", "dish soap", "paper towels", "trash bags", "sponge", "afwas", "wc-papier"}},
	{"Personal care", []string{"toothpaste", "shampoo", "deodorant", "soap", "razor", "tandpasta", "zeep"}},
}

// shortKeyword is the longest keyword that must match a whole word; longer
// keywords also match word prefixes ("banana" matches "bananas").
const shortKeyword = 3

// Aisle guesses the store aisle of an article name. Matching is
// case-insensitive; unknown names land in AisleOther.
func Aisle(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return AisleOther
	}
	joined := " " + strings.Join(words, " ") + " "

	best, bestLen := AisleOther, 0
	for _, a := range aisles {
		for _, kw := range a.keywords {
			n := utf8.RuneCountInString(kw)
			if n <= bestLen {
				continue
			}
			pattern := " " + kw
			if n <= shortKeyword {
				pattern += " "
			}
			if strings.Contains(joined, pattern) {
				best, bestLen = a.name, n
			}
		}
	}
	return best
}

// AisleGroup is a run of articles that share an aisle.
type AisleGroup struct {
	Aisle    string
	Articles []model.Article
	// Index holds each article's position in the list.
	Index []int
}

// GroupByAisle groups the list by aisle in the fixed aisle order, keeping
// list order inside each group. AisleOther comes last.
func GroupByAisle(l *List) []AisleGroup {
	byName := map[string]*AisleGroup{}
	for i, a := range l.articles {
		name := Aisle(a.Name)
		g, ok := byName[name]
		if !ok {
			g = &AisleGroup{Aisle: name}
			byName[name] = g
		}
		g.Articles = append(g.Articles, a)
		g.Index = append(g.Index, i)
	}

	order := make([]string, 0, len(aisles)+1)
	for _, a := range aisles {
		order = append(order, a.name)
	}
	order = append(order, AisleOther)

	var out []AisleGroup
	for _, name := range order {
		if g, ok := byName[name]; ok {
			out = append(out, *g)
		}
	}
	return slices.Clip(out)
}
