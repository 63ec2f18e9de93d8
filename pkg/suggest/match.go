package suggest

import (
	"sort"
	"strings"

	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/pmezard/go-difflib/difflib"
)

// Variant says which characters of an entry a match stands for.
type Variant int

const (
	VariantChar  Variant = iota // the entry's primary character
	VariantAlias                // every alias of the entry
)

func (v Variant) String() string {
	if v == VariantAlias {
		return "alias"
	}
	return "char"
}

// Match tiers. Tier always dominates score.
const (
	TierEdit      = 0
	TierAlias     = 5
	TierSubstring = 10
	TierExact     = 20
)

// DefaultLimit is the number of matches kept when no limit is given.
const DefaultLimit = 100

const (
	wholeWordBonus = 20
	prefixBonus    = 10
)

// Match is one ranked hit against the table.
type Match struct {
	Tier    int
	Score   float64
	Name    string
	Variant Variant
}

// MatchOptions tunes FindMatches.
type MatchOptions struct {
	// Limit caps the returned matches. Zero or less means DefaultLimit.
	Limit int
	// ScanLimit caps the number of edit-distance evaluations per query.
	// Zero means unlimited.
	ScanLimit int
}

// FindMatches ranks the table entries against query.
//
// Exact name matches come first, then names containing every query word, then
// names the query can be turned into by insertions only. A degenerate table is
// returned whole, unscored, so its diagnostic entries are always visible.
func FindMatches(query string, t *symbols.Table, opts MatchOptions) []Match {
	if t == nil {
		return nil
	}
	if t.IsDegenerate() {
		return diagnosticMatches(t)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := utils.NormalizeQuery(query)
	words := strings.Fields(q)
	if len(words) == 0 {
		return nil
	}
	qLen := utils.RuneLen(q)
	qRunes := splitRunes(q)

	var matched []Match
	edits := 0
	_ = t.Each(func(e *symbols.Entry) error {
		name := e.Name
		if utils.RuneLen(name) < qLen {
			return nil
		}

		if q == name {
			if e.HasChar() {
				matched = append(matched, Match{Tier: TierExact, Name: name, Variant: VariantChar})
			}
			if e.HasAliases() {
				matched = append(matched, Match{Tier: TierAlias, Name: name, Variant: VariantAlias})
			}
			return nil
		}

		if score, ok := substringScore(words, name); ok {
			if e.HasChar() {
				matched = append(matched, Match{Tier: TierSubstring, Score: score, Name: name, Variant: VariantChar})
			}
			if e.HasAliases() {
				matched = append(matched, Match{Tier: TierAlias, Score: score, Name: name, Variant: VariantAlias})
			}
			return nil
		}

		if opts.ScanLimit > 0 && edits >= opts.ScanLimit {
			return nil
		}
		edits++
		if score := editScore(qRunes, name); score > 0 {
			variant := VariantChar
			if !e.HasChar() {
				variant = VariantAlias
			}
			matched = append(matched, Match{Tier: TierEdit, Score: float64(score), Name: name, Variant: variant})
		}
		return nil
	})

	sortMatches(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func diagnosticMatches(t *symbols.Table) []Match {
	entries := t.Entries()
	out := make([]Match, 0, len(entries))
	for _, e := range entries {
		out = append(out, Match{Tier: TierEdit, Name: e.Name, Variant: VariantChar})
	}
	return out
}

// sortMatches orders by (length, name) first and then by (tier, score)
// descending; both passes are stable so the first one breaks ties.
func sortMatches(m []Match) {
	sort.SliceStable(m, func(i, j int) bool {
		li, lj := utils.RuneLen(m[i].Name), utils.RuneLen(m[j].Name)
		if li != lj {
			return li < lj
		}
		return m[i].Name < m[j].Name
	})
	sort.SliceStable(m, func(i, j int) bool {
		if m[i].Tier != m[j].Tier {
			return m[i].Tier > m[j].Tier
		}
		return m[i].Score > m[j].Score
	})
}

// substringScore requires every word to occur in name. Earlier offsets score
// higher; whole candidate words earn wholeWordBonus, word prefixes prefixBonus.
func substringScore(words []string, name string) (float64, bool) {
	sum := 0
	for _, w := range words {
		ix := strings.Index(name, w)
		if ix < 0 {
			return 0, false
		}
		sum += utils.RuneLen(name[:ix])
	}
	score := -float64(sum) / float64(len(words))

	nameWords := strings.Fields(name)
	for _, w := range words {
		switch {
		case containsWord(nameWords, w):
			score += wholeWordBonus
		case prefixesWord(nameWords, w):
			score += prefixBonus
		}
	}
	return score, true
}

func containsWord(words []string, w string) bool {
	for _, cw := range words {
		if cw == w {
			return true
		}
	}
	return false
}

func prefixesWord(words []string, w string) bool {
	for _, cw := range words {
		if strings.HasPrefix(cw, w) {
			return true
		}
	}
	return false
}

// editScore scores the edit script turning query into name. Any replace or
// delete disqualifies the name and yields 0.
func editScore(query []string, name string) int {
	cand := splitRunes(name)
	m := difflib.NewMatcherWithJunk(query, cand, false, nil)

	score := 0
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'r', 'd':
			return 0
		case 'i':
			score--
		case 'e':
			score += op.I2 - op.I1
			if op.J1 == 0 {
				score += 2
			} else if cand[op.J1-1] == " " {
				score++
			}
			if op.J2 == len(cand) {
				score += 2
			} else if cand[op.J2] == " " {
				score++
			}
		}
	}
	return score
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
