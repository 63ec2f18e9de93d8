package suggest

import (
	"github.com/bastiangx/uniserve/pkg/symbols"
)

// fixtureTable mixes base-style and emoji-style entries; it holds more than
// symbols.DiagnosticThreshold entries so scoring is active.
func fixtureTable() *symbols.Table {
	b := symbols.NewBuilder()
	add := func(name, char string, fromEmoji bool) {
		b.Add(name, char, fromEmoji)
		b.RegisterChar(char, name)
	}

	add("black star", "★", false)
	add("white star", "☆", false)
	add("star of david", "✡", false)
	add("heart", "❤", false)
	add("black heart suit", "♥", false)
	add("heavy black heart", "❤", false)
	add("snowman", "☃", false)
	add("umbrella", "☂", false)
	add("comet", "☄", false)
	add("check mark", "✓", false)
	add("ballot x", "✗", false)
	add("infinity", "∞", false)

	add("grinning", "😀", true)
	b.RegisterLongName("😀", "grinning face")
	b.RegisterShortLabel("😀", "grinning")

	add("slightly smiling face", "🙂", true)
	b.RegisterLongName("🙂", "slightly smiling face")
	b.RegisterShortLabel("🙂", "slightly_smiling_face")
	b.RegisterShortcut(":)", "🙂")
	b.RegisterShortcut(":D", "😀")

	b.AddAlias("heart", "💖")
	b.RegisterLongName("💖", "sparkling heart")

	return b.Build()
}

func smallTable(names ...string) *symbols.Table {
	b := symbols.NewBuilder()
	for _, n := range names {
		b.Add(n, "x", false)
	}
	return b.Build()
}

func chars(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Char)
	}
	return out
}
