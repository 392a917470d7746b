// Package identity canonicalizes raw in-game player names.
package identity

import (
	"sort"
	"strings"
)

// Alias maps a set of variant spellings onto one canonical name.
type Alias struct {
	Canonical string   `mapstructure:"canonical"`
	Variants  []string `mapstructure:"variants"`
}

// DefaultAliases is the built-in alias table, in resolution order.
var DefaultAliases = []Alias{
	{"sh1ro", []string{"SH1R0", "sh1r0"}},
	{"910", []string{"910-", "-910"}},
	{"mzinho", []string{"Mzinho"}},
	{"Techno", []string{"Techno4K"}},
	{"Ag1l", []string{"ag1l", "ag1L"}},
	{"dav1deuS", []string{"dav1deu$", "davideuS"}},
	{"device", []string{"dev1ce"}},
	{"electroNic", []string{"electronic"}},
	{"HeavyGod", []string{"HeavyGoD"}},
	{"hfah", []string{"Hfah"}},
	{"huNter-", []string{"huNter"}},
	{"hypex", []string{"Hypex"}},
	{"jcobbb", []string{"Jcobbb"}},
	{"kauez", []string{"Kauez"}},
	{"lux", []string{"Lux"}},
	{"NAF", []string{"NAF-FLY"}},
	{"NertZ", []string{"nertZ"}},
	{"skullz", []string{"Skullz"}},
	{"Snax", []string{"snax"}},
	{"woxic", []string{"Woxic"}},
}

// Conflict is a spelling claimed by more than one canonical entry.
type Conflict struct {
	Spelling   string
	Canonicals []string // in declaration order; the first one wins
}

// Normalizer resolves raw names against an ordered alias table.
// It is read-only after construction and safe for concurrent use.
type Normalizer struct {
	lookup    map[string]string
	conflicts []Conflict
}

// New builds a Normalizer. Earlier entries take precedence over later ones
// when a spelling appears more than once.
func New(aliases []Alias) *Normalizer {
	n := &Normalizer{lookup: make(map[string]string)}
	claimed := make(map[string][]string)
	var order []string

	claim := func(spelling, canonical string) {
		spelling = strings.TrimSpace(spelling)
		if spelling == "" {
			return
		}
		prev, ok := claimed[spelling]
		if !ok {
			order = append(order, spelling)
			n.lookup[spelling] = canonical
		}
		for _, c := range prev {
			if c == canonical {
				return
			}
		}
		claimed[spelling] = append(prev, canonical)
	}

	// Canonical keys are matched before any variant of a later entry, which is
	// what a sequential scan of the table would do.
	for _, a := range aliases {
		claim(a.Canonical, a.Canonical)
		for _, v := range a.Variants {
			claim(v, a.Canonical)
		}
	}

	for _, s := range order {
		if cs := claimed[s]; len(cs) > 1 {
			n.conflicts = append(n.conflicts, Conflict{Spelling: s, Canonicals: cs})
		}
	}
	return n
}

// Default returns a Normalizer over DefaultAliases.
func Default() *Normalizer {
	return New(DefaultAliases)
}

// Normalize returns the canonical identity for raw. Unknown names are
// returned trimmed; empty input is returned unchanged.
func (n *Normalizer) Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return raw
	}
	if c, ok := n.lookup[name]; ok {
		return c
	}
	return name
}

// Conflicts lists spellings that more than one canonical entry claims.
func (n *Normalizer) Conflicts() []Conflict {
	out := make([]Conflict, len(n.conflicts))
	copy(out, n.conflicts)
	return out
}

// Canonicals returns every canonical identity in the table, sorted.
func (n *Normalizer) Canonicals() []string {
	seen := make(map[string]bool)
	for _, c := range n.lookup {
		seen[c] = true
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
