package glossary

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Entry is one glossary term and its definition.
type Entry struct {
	Term       string `yaml:"term"`
	Definition string `yaml:"definition"`
}

// Glossary is an ordered mapping from term to definition.
// Terms keep their authored casing and insertion order. Setting an existing
// term replaces its definition without moving it.
// The zero value is an empty glossary ready to use.
type Glossary struct {
	entries []Entry
	index   map[string]int
}

// New returns a glossary holding entries in order.
// Later entries with the same term overwrite earlier ones.
func New(entries ...Entry) *Glossary {
	g := &Glossary{}
	for _, e := range entries {
		g.Set(e.Term, e.Definition)
	}
	return g
}

// Set adds or replaces the definition of term. Empty terms are ignored.
func (g *Glossary) Set(term, definition string) {
	if term == "" {
		return
	}
	if g.index == nil {
		g.index = make(map[string]int)
	}
	if i, ok := g.index[term]; ok {
		g.entries[i].Definition = definition
		return
	}
	g.index[term] = len(g.entries)
	g.entries = append(g.entries, Entry{Term: term, Definition: definition})
}

// Definition returns the definition for an exact term.
func (g *Glossary) Definition(term string) (string, bool) {
	if g == nil {
		return "", false
	}
	i, ok := g.index[term]
	if !ok {
		return "", false
	}
	return g.entries[i].Definition, true
}

// Len returns the number of terms.
func (g *Glossary) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// Entries returns a copy of the entries in glossary order.
func (g *Glossary) Entries() []Entry {
	if g == nil {
		return nil
	}
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Terms returns the terms in glossary order.
func (g *Glossary) Terms() []string {
	if g == nil {
		return nil
	}
	terms := make([]string, len(g.entries))
	for i, e := range g.entries {
		terms[i] = e.Term
	}
	return terms
}

// TermOrder decides the order in which terms are matched against a page.
// When two terms can claim the same text, the one processed first wins.
type TermOrder int

const (
	// OrderAuthored processes terms in glossary order.
	OrderAuthored TermOrder = iota
	// OrderLongestFirst processes longer terms first, so "machine learning"
	// is annotated before "learning" can claim part of it.
	OrderLongestFirst
)

// String returns the configuration name of the order.
func (o TermOrder) String() string {
	switch o {
	case OrderAuthored:
		return "authored"
	case OrderLongestFirst:
		return "longest-first"
	default:
		return fmt.Sprintf("TermOrder(%d)", int(o))
	}
}

// ParseTermOrder converts a configuration name into a TermOrder.
// An empty name selects OrderAuthored.
func ParseTermOrder(name string) (TermOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "authored":
		return OrderAuthored, nil
	case "longest-first":
		return OrderLongestFirst, nil
	default:
		return OrderAuthored, fmt.Errorf("%w: %q (must be authored or longest-first)", ErrInvalidTermOrder, name)
	}
}

// arrange returns the entries in processing order. Ties keep glossary order.
func (o TermOrder) arrange(entries []Entry) []Entry {
	if o != OrderLongestFirst {
		return entries
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return utf8.RuneCountInString(entries[i].Term) > utf8.RuneCountInString(entries[j].Term)
	})
	return entries
}
