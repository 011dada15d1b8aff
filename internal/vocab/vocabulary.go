// Package vocab holds the canonical matching vocabulary and the title matcher.
//
// The vocabulary is explicitly ordered: brands, categories, spec groups, specs,
// attributes, and their aliases are kept in definition order, and the matcher's
// first-match tie-breaking follows that order. Ordering is part of the matching
// contract, not an accident of map iteration.
package vocab

import (
	"fmt"

	"github.com/normkit/normalize-server/internal/domain"
)

// ValueAliases binds one canonical value to its ordered alias list.
type ValueAliases struct {
	Canonical string
	Aliases   []string
}

// SpecGroup is a named group of spec values (e.g. "storage", "screen_size").
type SpecGroup struct {
	Name  string
	Specs []ValueAliases
}

// Vocabulary is the full ordered matching vocabulary.
type Vocabulary struct {
	Brands     []ValueAliases
	Categories []ValueAliases
	SpecGroups []SpecGroup
	Attributes []ValueAliases
}

// Entries flattens the vocabulary into persistable rows. Position numbering is
// global and increasing in definition order so a position-ordered read
// reconstructs the same vocabulary.
func (v *Vocabulary) Entries() []domain.VocabularyEntry {
	var entries []domain.VocabularyEntry
	pos := 0

	add := func(category domain.Category, specGroup, canonical string, aliases []string) {
		for _, alias := range aliases {
			entries = append(entries, domain.VocabularyEntry{
				Category:       category,
				SpecGroup:      specGroup,
				CanonicalValue: canonical,
				Alias:          alias,
				Position:       pos,
			})
			pos++
		}
	}

	for _, b := range v.Brands {
		add(domain.CategoryBrand, "", b.Canonical, b.Aliases)
	}
	for _, c := range v.Categories {
		add(domain.CategoryCategory, "", c.Canonical, c.Aliases)
	}
	for _, g := range v.SpecGroups {
		for _, s := range g.Specs {
			add(domain.CategorySpec, g.Name, s.Canonical, s.Aliases)
		}
	}
	for _, a := range v.Attributes {
		add(domain.CategoryAttribute, "", a.Canonical, a.Aliases)
	}

	return entries
}

// FromEntries rebuilds an ordered vocabulary from persisted rows.
// Rows must already be sorted by position (the store guarantees this).
func FromEntries(entries []domain.VocabularyEntry) (*Vocabulary, error) {
	v := &Vocabulary{}

	appendAlias := func(list []ValueAliases, canonical, alias string) []ValueAliases {
		if n := len(list); n > 0 && list[n-1].Canonical == canonical {
			list[n-1].Aliases = append(list[n-1].Aliases, alias)
			return list
		}
		return append(list, ValueAliases{Canonical: canonical, Aliases: []string{alias}})
	}

	for _, e := range entries {
		switch e.Category {
		case domain.CategoryBrand:
			v.Brands = appendAlias(v.Brands, e.CanonicalValue, e.Alias)
		case domain.CategoryCategory:
			v.Categories = appendAlias(v.Categories, e.CanonicalValue, e.Alias)
		case domain.CategoryAttribute:
			v.Attributes = appendAlias(v.Attributes, e.CanonicalValue, e.Alias)
		case domain.CategorySpec:
			if n := len(v.SpecGroups); n > 0 && v.SpecGroups[n-1].Name == e.SpecGroup {
				v.SpecGroups[n-1].Specs = appendAlias(v.SpecGroups[n-1].Specs, e.CanonicalValue, e.Alias)
			} else {
				v.SpecGroups = append(v.SpecGroups, SpecGroup{
					Name:  e.SpecGroup,
					Specs: []ValueAliases{{Canonical: e.CanonicalValue, Aliases: []string{e.Alias}}},
				})
			}
		case domain.CategoryColor:
			// Color entries feed the lookup model, not the title matcher.
		default:
			return nil, fmt.Errorf("unknown vocabulary category %q", e.Category)
		}
	}

	return v, nil
}
