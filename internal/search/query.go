// Package search derives the views a client renders from a snapshot of the
// contact collection: the filtered and name-sorted list, the favorites row
// and collection totals.
//
// Every function here is pure. Inputs are never mutated and results are
// always freshly allocated, so callers may hand in a store snapshot and keep
// using it afterwards. Name ordering uses a locale-aware collator from
// golang.org/x/text/collate; case-insensitive matching uses Unicode case
// folding rather than ASCII lowering so Bengali and Latin names behave the
// same way.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tbourn/neolink-backend/internal/domain"
)

// Params selects the filtered view.
//
// An empty Department, or domain.DepartmentAll, matches every contact.
// Query is matched case-insensitively against name and contactId and
// literally against mobile.
type Params struct {
	Query      string
	Department string
}

// Option configures the query engine.
type Option func(*config)

type config struct {
	locale language.Tag
}

func defaultConfig() config {
	return config{locale: language.Und}
}

// WithLocale sets the collation locale used to order names.
func WithLocale(tag language.Tag) Option {
	return func(c *config) {
		c.locale = tag
	}
}

// Filter returns the contacts matching p, sorted ascending by name.
// Contacts with equal names keep their relative collection order.
func Filter(contacts []domain.Contact, p Params, opts ...Option) []domain.Contact {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	fold := cases.Fold()
	q := fold.String(p.Query)
	dept := strings.TrimSpace(p.Department)

	out := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		if dept != "" && dept != domain.DepartmentAll && string(c.Department) != dept {
			continue
		}
		if !matches(fold, c, p.Query, q) {
			continue
		}
		out = append(out, c)
	}

	// collate.Collator is stateful, one per call keeps Filter safe for concurrent use.
	col := collate.New(cfg.locale)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

func matches(fold cases.Caser, c domain.Contact, raw, folded string) bool {
	if raw == "" {
		return true
	}
	return strings.Contains(fold.String(c.Name), folded) ||
		strings.Contains(c.Mobile, raw) ||
		strings.Contains(fold.String(c.ContactID), folded)
}

// Favorites returns the favorited contacts in collection order.
func Favorites(contacts []domain.Contact) []domain.Contact {
	out := make([]domain.Contact, 0)
	for _, c := range contacts {
		if c.IsFavorite {
			out = append(out, c)
		}
	}
	return out
}

// FavoritesVisible reports whether the favorites row is shown for query.
// It is hidden while a search is active. Whitespace counts as a search since
// Filter matches the query verbatim.
func FavoritesVisible(query string) bool {
	return query == ""
}

// Summary holds collection totals.
type Summary struct {
	Total        int            `json:"total"`
	Favorites    int            `json:"favorites"`
	ByDepartment map[string]int `json:"byDepartment"`
}

// Summarize counts contacts overall, favorited, and per effective department.
func Summarize(contacts []domain.Contact) Summary {
	s := Summary{ByDepartment: make(map[string]int)}
	for _, c := range contacts {
		s.Total++
		if c.IsFavorite {
			s.Favorites++
		}
		s.ByDepartment[string(c.Department)]++
	}
	return s
}
