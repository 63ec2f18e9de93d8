package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/bastiangx/uniserve/pkg/ime"
	"github.com/bastiangx/uniserve/pkg/suggest"
	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *suggest.Resolver {
	b := symbols.NewBuilder()
	for name, char := range map[string]string{
		"black star": "★", "white star": "☆", "star of david": "✡",
		"snowman": "☃", "umbrella": "☂", "comet": "☄", "check mark": "✓",
		"ballot x": "✗", "infinity": "∞", "em dash": "—", "bullet": "•",
		"euro sign": "€",
	} {
		b.Add(name, char, false)
		b.RegisterChar(char, name)
	}
	return suggest.NewStaticResolver(b.Build(), suggest.Options{})
}

func TestInputHandlerPrintsCandidates(t *testing.T) {
	var out bytes.Buffer
	h := NewInputHandler(testResolver(), 2, 60).
		WithIO(strings.NewReader("star\n\nzzzzzzzz\n/stats\n/bogus\n/quit\nsnowman\n"), &out)
	require.NoError(t, h.Start())

	got := out.String()
	assert.Contains(t, got, " 1. ✡: star of david")
	assert.Contains(t, got, " 2. ★: black star")
	assert.NotContains(t, got, "white star")
	assert.Contains(t, got, "no symbols found for 'zzzzzzzz'")
	assert.Contains(t, got, "entries")
	assert.Contains(t, got, "unknown command /bogus")
	// nothing after /quit is read
	assert.NotContains(t, got, "snowman")
	assert.Equal(t, 2, h.requestCount)
}

func TestInputHandlerReloadWithoutLoader(t *testing.T) {
	var out bytes.Buffer
	h := NewInputHandler(testResolver(), 5, 60).WithIO(strings.NewReader("/reload\n"), &out)
	require.NoError(t, h.Start())
	assert.NotContains(t, out.String(), "reloaded")
}

func TestInputHandlerRejectsLongQueries(t *testing.T) {
	var out bytes.Buffer
	h := NewInputHandler(testResolver(), 5, 3).WithIO(strings.NewReader("star\n"), &out)
	require.NoError(t, h.Start())
	assert.NotContains(t, out.String(), "black star")
}

func TestParseKeys(t *testing.T) {
	events, err := ParseKeys("ab<Down><c-x>1<")
	require.NoError(t, err)
	assert.Equal(t, []KeyEvent{
		{Key: 'a'},
		{Key: 'b'},
		{Key: ime.KeyDown},
		{Key: 'x', Mods: ime.ModControl},
		{Key: '1'},
		{Key: '<'},
	}, events)

	_, err = ParseKeys("<warp>")
	assert.Error(t, err)
}

func TestParseKeysInvalidUTF8(t *testing.T) {
	events, err := ParseKeys("a\xffé\xc3")
	require.NoError(t, err)
	assert.Equal(t, []KeyEvent{{Key: 'a'}, {Key: 'é'}}, events)
}

func TestKeySession(t *testing.T) {
	var out bytes.Buffer
	adapter := ime.NewAdapter(testResolver(), 9)
	in := strings.NewReader("star\n<down><return>\n<space>\nsnow.\n")
	require.NoError(t, NewKeySession(adapter).WithIO(in, &out).Start())

	got := out.String()
	assert.Contains(t, got, "preedit: star")
	assert.Contains(t, got, "> 1. ✡: star of david")
	assert.Contains(t, got, `commit: "★"`)
	assert.Contains(t, got, `commit: " "`)
	assert.Contains(t, got, `commit: "snow."`)
}

func TestPrintInfoSorted(t *testing.T) {
	var out bytes.Buffer
	PrintInfo(&out, map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, fmt.Sprintf("%-18s 1\n%-18s 2\n", "a", "b"), out.String())
}

func TestInputHandlerNames(t *testing.T) {
	var out bytes.Buffer
	h := NewInputHandler(testResolver(), 5, 60).
		WithIO(strings.NewReader("/names s\n/names Black_S\n/names qq\n"), &out)
	require.NoError(t, h.Start())

	got := out.String()
	assert.Contains(t, got, "☃ snowman\n✡ star of david\n")
	assert.Contains(t, got, "★ black star\n")
	assert.NotContains(t, got, "white star")
	assert.Contains(t, got, "no names start with 'qq'")
	assert.Zero(t, h.requestCount)
}

func TestPrintNamesLimit(t *testing.T) {
	var out bytes.Buffer
	PrintNames(&out, testResolver().Table(), "b", 1)
	assert.Equal(t, "✗ ballot x\n... 2 more\n", out.String())
}
