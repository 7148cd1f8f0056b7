package model

import (
	"strconv"
	"strings"
)

// MinAmount is the smallest amount an article can be stored with.
const MinAmount = 1

type Article struct {
	ID            int64   `json:"id"`
	ShopID        int64   `json:"shop_id"`
	Name          string  `json:"name"`
	Amount        int     `json:"amount"`
	Measure       *string `json:"measure"`
	Strikethrough bool    `json:"strikethrough"`
	Priority      int     `json:"priority"`
}

// String renders the article the way it is copied to the clipboard:
// amount immediately followed by the measure, a space, then the name.
func (a Article) String() string {
	return strconv.Itoa(a.Amount) + a.MeasureText() + " " + a.Name
}

// MeasureText returns the measure or "" when the article has none.
func (a Article) MeasureText() string {
	if a.Measure == nil {
		return ""
	}
	return *a.Measure
}

// ClampAmount coerces amounts below MinAmount to MinAmount.
func ClampAmount(n int) int {
	if n < MinAmount {
		return MinAmount
	}
	return n
}

// ParseAmount reads user input as an amount. Anything that is not an
// integer falls back to MinAmount; the result is always clamped.
func ParseAmount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return MinAmount
	}
	return ClampAmount(n)
}

// Measure normalizes a unit entered by the user. Blank input means no unit.
func Measure(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
