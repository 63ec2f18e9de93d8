package symbols

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAddKeepsFirstEntry(t *testing.T) {
	b := NewBuilder()
	e, created := b.Add("black star", "★", false)
	require.True(t, created)
	assert.Equal(t, "★", e.Char)

	again, created := b.Add("black star", "☆", true)
	assert.False(t, created)
	assert.Same(t, e, again)
	assert.Equal(t, "★", again.Char)
}

func TestBuilderAliasNeverDuplicatesPrimary(t *testing.T) {
	b := NewBuilder()
	b.Add("heart", "❤", true)

	assert.False(t, b.AddAlias("heart", "❤"))
	assert.True(t, b.AddAlias("heart", "💖"))
	assert.False(t, b.AddAlias("heart", "💖"))

	e, _ := b.Lookup("heart")
	assert.Equal(t, []string{"💖"}, e.Aliases)
}

func TestBuilderAliasCreatesAliasOnlyEntry(t *testing.T) {
	b := NewBuilder()
	require.True(t, b.AddAlias("happy", "😀"))

	e, ok := b.Lookup("happy")
	require.True(t, ok)
	assert.False(t, e.HasChar())
	assert.True(t, e.HasAliases())
}

func TestRegistrationsFirstWriterWins(t *testing.T) {
	b := NewBuilder()
	assert.True(t, b.RegisterChar("★", "black star"))
	assert.False(t, b.RegisterChar("★", "star"))
	assert.True(t, b.Reachable("★"))
	assert.False(t, b.Reachable("☆"))

	b.RegisterShortcut(":)", "🙂")
	b.RegisterShortcut(":)", "😀")
	b.RegisterLongName("🙂", "slightly smiling face")
	b.RegisterShortLabel("🙂", "slightly_smiling_face")

	tbl := b.Build()
	name, _ := tbl.NameOf("★")
	assert.Equal(t, "black star", name)
	char, ok := tbl.Shortcut(":)")
	require.True(t, ok)
	assert.Equal(t, "🙂", char)
	long, _ := tbl.LongName("🙂")
	assert.Equal(t, "slightly smiling face", long)
	label, _ := tbl.ShortLabel("🙂")
	assert.Equal(t, "slightly_smiling_face", label)
	assert.Equal(t, 1, tbl.Shortcuts())
}

func TestOverrideReplacesEntry(t *testing.T) {
	b := NewBuilder()
	b.Add("shrug", "x", false)
	b.AddAlias("shrug", "y")
	e := b.Override("shrug", "¯\\_(ツ)_/¯")

	assert.True(t, e.Custom)
	assert.Empty(t, e.Aliases)
	got, _ := b.Lookup("shrug")
	assert.Same(t, e, got)
}

func TestTableIteration(t *testing.T) {
	b := NewBuilder()
	for _, name := range []string{"zeta", "alpha", "alpha beta", "gamma"} {
		b.Add(name, name[:1], false)
	}
	tbl := b.Build()
	assert.Equal(t, 4, tbl.Len())
	assert.True(t, tbl.IsDegenerate())

	seen := map[string]bool{}
	require.NoError(t, tbl.Each(func(e *Entry) error {
		seen[e.Name] = true
		return nil
	}))
	assert.Len(t, seen, 4)

	var prefixed []string
	require.NoError(t, tbl.EachWithPrefix("alpha", func(e *Entry) error {
		prefixed = append(prefixed, e.Name)
		return nil
	}))
	assert.ElementsMatch(t, []string{"alpha", "alpha beta"}, prefixed)

	names := []string{}
	for _, e := range tbl.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"alpha", "alpha beta", "gamma", "zeta"}, names)

	stop := errors.New("stop")
	count := 0
	err := tbl.Each(func(e *Entry) error {
		count++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, count)
}

func TestDiagnosticTable(t *testing.T) {
	tbl := Diagnostic("failed to load custom file x: boom")
	require.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.IsDegenerate())

	e, ok := tbl.Get("failed to load custom file x: boom")
	require.True(t, ok)
	assert.True(t, e.Diagnostic)
	assert.Equal(t, DiagnosticChar, e.Char)
}
