package suggest

import (
	"fmt"
	"strings"

	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/symbols"
)

// Candidate is a display-ready result: the character to commit and the label
// to show for it.
type Candidate struct {
	Char  string
	Label string
}

// Enumerate resolves query into candidates, each character at most once.
// An exact ASCII shortcut is always listed first.
func Enumerate(query string, t *symbols.Table, opts MatchOptions) []Candidate {
	if t == nil {
		return nil
	}
	filter := utils.NewSeenFilter()
	var out []Candidate

	if char, ok := shortcut(t, query); ok {
		filter.ShouldInclude(char)
		out = append(out, Candidate{
			Char:  char,
			Label: fmt.Sprintf("%s: %s [%s]", char, longNameOf(t, char, query), query),
		})
	}

	for _, m := range FindMatches(strings.ToLower(query), t, opts) {
		e, ok := t.Get(m.Name)
		if !ok {
			continue
		}
		switch m.Variant {
		case VariantChar:
			if !e.HasChar() || !filter.ShouldInclude(e.Char) {
				continue
			}
			out = append(out, Candidate{Char: e.Char, Label: charLabel(t, e)})
		case VariantAlias:
			for _, alias := range e.Aliases {
				if !filter.ShouldInclude(alias) {
					continue
				}
				out = append(out, Candidate{Char: alias, Label: aliasLabel(t, alias, e.Name)})
			}
		}
	}
	return out
}

// shortcut tries the query as typed, then normalized, so ":D" and ":p" both hit.
func shortcut(t *symbols.Table, query string) (string, bool) {
	if char, ok := t.Shortcut(query); ok {
		return char, true
	}
	return t.Shortcut(utils.NormalizeQuery(query))
}

func charLabel(t *symbols.Table, e *symbols.Entry) string {
	if e.Diagnostic {
		return fmt.Sprintf("%s: %s", e.Char, e.Name)
	}
	if e.FromEmoji {
		if long, ok := t.LongName(e.Char); ok && long != e.Name {
			return fmt.Sprintf("%s: :%s: %s", e.Char, utils.Underscore(e.Name), long)
		}
	}
	if label, ok := t.ShortLabel(e.Char); ok {
		return fmt.Sprintf("%s: %s: %s", e.Char, label, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Char, e.Name)
}

func aliasLabel(t *symbols.Table, char, matched string) string {
	long := longNameOf(t, char, matched)
	if label, ok := t.ShortLabel(char); ok {
		return fmt.Sprintf("%s: %s: %s [%s]", char, label, long, matched)
	}
	return fmt.Sprintf("%s: %s [%s]", char, long, matched)
}

func longNameOf(t *symbols.Table, char, fallback string) string {
	if long, ok := t.LongName(char); ok {
		return long
	}
	if name, ok := t.NameOf(char); ok {
		return name
	}
	return fallback
}
