package dictionary

import (
	"strings"
	"testing"

	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmoji(t *testing.T) {
	records, skipped, err := ParseEmoji([]byte(emojiFixture))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, records, 7)

	// document order is kept
	assert.Equal(t, "grinning", records[0].ID)
	assert.Equal(t, "checkered_flag", records[6].ID)

	assert.Equal(t, "slight_smile", records[1].Shortname)
	assert.Equal(t, []string{":)", ":-)"}, records[1].ASCII)
	assert.Equal(t, []string{"japan", "nation"}, records[4].Keywords)
	assert.Equal(t, "🇯🇵", records[4].Char)
}

func TestParseEmojiPrefersJoinerSequence(t *testing.T) {
	records, _, err := ParseEmoji([]byte(emojiFixture))
	require.NoError(t, err)
	assert.Equal(t, "\U0001F468\u200d\U0001F469\u200d\U0001F466", records[5].Char)
}

func TestParseEmojiRejectsInvalidDocuments(t *testing.T) {
	for _, doc := range []string{"", "{", "[1,2]", `"text"`} {
		_, _, err := ParseEmoji([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestDecodeSequence(t *testing.T) {
	got, ok := decodeSequence("1f1ef-1f1f5")
	assert.True(t, ok)
	assert.Equal(t, "🇯🇵", got)

	_, ok = decodeSequence("1f1ef-xx")
	assert.False(t, ok)
	_, ok = decodeSequence("")
	assert.False(t, ok)
}

func TestIsFlagPhrased(t *testing.T) {
	assert.True(t, isFlagPhrased("chequered flag"))
	assert.True(t, isFlagPhrased("crossed flags"))
	assert.False(t, isFlagPhrased("japan"))
	assert.False(t, isFlagPhrased("flagpole"))
}

func applyFixture(t *testing.T, opts Options) (*symbols.Table, EmojiStats) {
	t.Helper()
	b := symbols.NewBuilder()
	_, _, err := ReadUnicodeData(b, strings.NewReader(baseFixture), opts)
	require.NoError(t, err)
	records, _, err := ParseEmoji([]byte(emojiFixture))
	require.NoError(t, err)
	stats := ApplyEmoji(b, records, opts)
	return b.Build(), stats
}

func TestApplyEmojiSharedShortname(t *testing.T) {
	tbl, _ := applyFixture(t, DefaultOptions())

	// same shortname and same character adds nothing; a different character
	// becomes an alias of the existing entry
	e, ok := tbl.Get("black star")
	require.True(t, ok)
	assert.Equal(t, "★", e.Char)
	assert.False(t, e.FromEmoji)
	assert.Equal(t, []string{"⭐"}, e.Aliases)

	// the alias character was unreachable, so its long name gets an entry
	medium, ok := tbl.Get("white medium star")
	require.True(t, ok)
	assert.Equal(t, "⭐", medium.Char)
	long, _ := tbl.LongName("⭐")
	assert.Equal(t, "white medium star", long)
}

func TestApplyEmojiFlags(t *testing.T) {
	tbl, _ := applyFixture(t, DefaultOptions())

	e, ok := tbl.Get("flag of japan")
	require.True(t, ok)
	assert.Equal(t, "🇯🇵", e.Char)
	_, ok = tbl.Get("flag jp")
	assert.False(t, ok)

	// the bare country name resolves too, as a real entry
	e, ok = tbl.Get("japan")
	require.True(t, ok)
	assert.Equal(t, "🇯🇵", e.Char)
	assert.Empty(t, e.Aliases)

	// names that already read as a flag are left alone
	_, ok = tbl.Get("flag of chequered flag")
	assert.False(t, ok)
	e, ok = tbl.Get("checkered flag")
	require.True(t, ok)
	assert.Equal(t, "🏁", e.Char)
	_, ok = tbl.Get("chequered flag")
	assert.True(t, ok)
}

func TestApplyEmojiNamesAndLabels(t *testing.T) {
	tbl, stats := applyFixture(t, DefaultOptions())

	e, ok := tbl.Get("grinning")
	require.True(t, ok)
	assert.True(t, e.FromEmoji)

	// the base name keeps the canonical slot
	name, _ := tbl.NameOf("😀")
	assert.Equal(t, "grinning face", name)
	label, _ := tbl.ShortLabel("😀")
	assert.Equal(t, "grinning", label)
	label, _ = tbl.ShortLabel("🙂")
	assert.Equal(t, "slight_smile", label)

	assert.Equal(t, 7, stats.Records)
	assert.Equal(t, 3, stats.LongNames)
	assert.Equal(t, 3, stats.Shortcuts)
	assert.Equal(t, 8, stats.Aliases)
	assert.Equal(t, 25, tbl.Len())
}

func TestApplyEmojiKeywords(t *testing.T) {
	tbl, _ := applyFixture(t, DefaultOptions())

	happy, ok := tbl.Get("happy")
	require.True(t, ok)
	assert.False(t, happy.HasChar())
	assert.Equal(t, []string{"😀", "🙂"}, happy.Aliases)

	smile, ok := tbl.Get("smile")
	require.True(t, ok)
	assert.Equal(t, []string{"🙂"}, smile.Aliases)
}

func TestApplyEmojiDropsGenericKeywords(t *testing.T) {
	opts := DefaultOptions()
	opts.KeywordGenericThreshold = 2
	tbl, stats := applyFixture(t, opts)

	assert.Equal(t, 2, stats.GenericKeywords)
	_, ok := tbl.Get("face")
	assert.False(t, ok)
	_, ok = tbl.Get("happy")
	assert.False(t, ok)
	_, ok = tbl.Get("grin")
	assert.True(t, ok)
}

func TestApplyEmojiShortcuts(t *testing.T) {
	tbl, _ := applyFixture(t, DefaultOptions())

	for ascii, want := range map[string]string{":D": "😀", ":)": "🙂", ":-)": "🙂"} {
		got, ok := tbl.Shortcut(ascii)
		assert.True(t, ok, ascii)
		assert.Equal(t, want, got, ascii)
	}
}

func TestApplyEmojiFlagWithoutKeywords(t *testing.T) {
	records, _, err := ParseEmoji([]byte(`{"flag_fr":{"unicode":"1f1eb-1f1f7","name":"France","category":"flags"}}`))
	require.NoError(t, err)
	b := symbols.NewBuilder()
	stats := ApplyEmoji(b, records, DefaultOptions())
	tbl := b.Build()

	assert.Equal(t, 1, stats.LongNames)
	assert.Equal(t, 2, tbl.Len())
	for _, name := range []string{"flag of france", "france"} {
		e, ok := tbl.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "🇫🇷", e.Char, name)
		assert.True(t, e.FromEmoji, name)
	}

	name, _ := tbl.NameOf("🇫🇷")
	assert.Equal(t, "flag of france", name)
	long, _ := tbl.LongName("🇫🇷")
	assert.Equal(t, "france", long)
}
