package dictionary

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/tidwall/gjson"
)

// zwj is the zero-width joiner codepoint as it appears in emoji sequences.
const zwj = "200d"

var errInvalidJSON = errors.New("invalid JSON document")

// EmojiRecord is one parsed record of the emoji dataset.
type EmojiRecord struct {
	ID        string
	Shortname string
	Char      string
	Name      string
	Category  string
	Keywords  []string
	ASCII     []string
}

// EmojiStats summarizes one ApplyEmoji run.
type EmojiStats struct {
	Records         int
	Aliases         int
	LongNames       int
	GenericKeywords int
	Shortcuts       int
}

// ParseEmoji decodes an emoji dataset keyed by id. Records whose codepoint
// sequence does not decode are skipped and counted. Document order is kept.
func ParseEmoji(data []byte) ([]EmojiRecord, int, error) {
	if !gjson.ValidBytes(data) {
		return nil, 0, errInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, 0, errInvalidJSON
	}

	var records []EmojiRecord
	skipped := 0
	doc.ForEach(func(key, value gjson.Result) bool {
		rec, ok := parseEmojiRecord(key.String(), value)
		if !ok {
			skipped++
			return true
		}
		records = append(records, rec)
		return true
	})
	return records, skipped, nil
}

func parseEmojiRecord(id string, v gjson.Result) (EmojiRecord, bool) {
	if !v.IsObject() {
		return EmojiRecord{}, false
	}
	seq := v.Get("unicode").String()
	if alt := v.Get("unicode_alt").String(); strings.Contains(strings.ToLower(alt), zwj) {
		seq = alt
	}
	char, ok := decodeSequence(seq)
	if !ok {
		return EmojiRecord{}, false
	}

	shortname := strings.Trim(v.Get("shortname").String(), ":")
	if shortname == "" {
		shortname = id
	}
	name := v.Get("name").String()
	if name == "" {
		return EmojiRecord{}, false
	}

	return EmojiRecord{
		ID:        id,
		Shortname: shortname,
		Char:      char,
		Name:      name,
		Category:  v.Get("category").String(),
		Keywords:  stringList(v.Get("keywords")),
		ASCII:     stringList(v.Get("aliases_ascii")),
	}, true
}

// stringList accepts both a JSON array and the older space-separated string.
func stringList(v gjson.Result) []string {
	if !v.Exists() {
		return nil
	}
	if v.IsArray() {
		var out []string
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return strings.Fields(v.String())
}

// decodeSequence turns "1f468-200d-1f469" into the character string.
func decodeSequence(seq string) (string, bool) {
	seq = strings.TrimSpace(seq)
	if seq == "" {
		return "", false
	}
	var sb strings.Builder
	for _, part := range strings.Split(seq, "-") {
		code, err := strconv.ParseUint(part, 16, 32)
		if err != nil || !utf8.ValidRune(rune(code)) {
			return "", false
		}
		sb.WriteRune(rune(code))
	}
	return sb.String(), true
}

// isFlagPhrased reports whether a long name already reads as a flag.
func isFlagPhrased(name string) bool {
	for _, w := range strings.Fields(name) {
		if w == "flag" || w == "flags" {
			return true
		}
	}
	return false
}

// ApplyEmoji merges emoji records into b, on top of the base dataset.
func ApplyEmoji(b *symbols.Builder, records []EmojiRecord, opts Options) EmojiStats {
	stats := EmojiStats{Records: len(records)}

	type keywordHits struct {
		records int
		chars   []string
	}
	keywords := make(map[string]*keywordHits)

	for _, rec := range records {
		char := rec.Char
		reachable := b.Reachable(char)

		short := utils.NormalizeName(rec.Shortname)
		long := utils.NormalizeName(rec.Name)
		isFlag := rec.Category == opts.FlagCategory && !isFlagPhrased(long)

		if existing, ok := b.Lookup(short); ok {
			if existing.Char != char && b.AddAlias(short, char) {
				stats.Aliases++
			}
		} else {
			name := short
			if isFlag {
				name = "flag of " + long
			}
			b.Add(name, char, true)
			b.RegisterChar(char, name)
		}
		b.RegisterShortLabel(char, utils.Underscore(short))

		if !reachable {
			if _, created := b.Add(long, char, true); created {
				stats.LongNames++
			}
			b.RegisterChar(char, long)
		}
		b.RegisterLongName(char, long)

		seen := make(map[string]bool, len(rec.Keywords))
		for _, kw := range rec.Keywords {
			kw = utils.NormalizeName(kw)
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			hits, ok := keywords[kw]
			if !ok {
				hits = &keywordHits{}
				keywords[kw] = hits
			}
			hits.records++
			hits.chars = append(hits.chars, char)
		}

		for _, ascii := range rec.ASCII {
			if b.RegisterShortcut(ascii, char) {
				stats.Shortcuts++
			}
		}
	}

	words := make([]string, 0, len(keywords))
	for kw := range keywords {
		words = append(words, kw)
	}
	sort.Strings(words)

	for _, kw := range words {
		hits := keywords[kw]
		if opts.KeywordGenericThreshold > 0 && hits.records >= opts.KeywordGenericThreshold {
			stats.GenericKeywords++
			continue
		}
		for _, char := range hits.chars {
			if b.AddAlias(kw, char) {
				stats.Aliases++
			}
		}
	}
	return stats
}
