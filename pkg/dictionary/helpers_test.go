package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const baseFixture = `0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;
00A9;COPYRIGHT SIGN;So;0;ON;;;;;N;;;;;
2014;EM DASH;Pd;0;ON;;;;;N;;;;;
2022;BULLET;Po;0;ON;;;;;N;;;;;
20AC;EURO SIGN;Sc;0;ET;;;;;N;;;;;
2190;LEFTWARDS ARROW;Sm;0;ON;;;;;N;LEFT ARROW;;;;
221E;INFINITY;Sm;0;ON;;;;;N;;;;;
2600;<reserved-2600>;So;0;ON;;;;;N;;;;;
2603;SNOWMAN;So;0;ON;;;;;N;;;;;
2605;BLACK STAR;So;0;ON;;;;;N;;;;;
2606;WHITE STAR;So;0;ON;;;;;N;;;;;
263A;WHITE SMILING FACE;So;0;ON;;;;;N;;;;;
2764;HEAVY BLACK HEART;So;0;ON;;;;;N;;;;;
garbage line
ZZZZ;BAD HEX;So;0;ON;;;;;N;;;;;

1F600;GRINNING FACE;So;0;ON;;;;;N;;;;;
1F642;SLIGHTLY SMILING FACE;So;0;ON;;;;;N;;;;;
`

const emojiFixture = `{
  "grinning": {
    "unicode": "1f600", "name": "grinning face", "shortname": ":grinning:",
    "category": "people", "keywords": ["face", "grin", "happy"],
    "aliases_ascii": [":D"]
  },
  "slight_smile": {
    "unicode": "1f642", "name": "slightly smiling face", "shortname": ":slight_smile:",
    "category": "people", "keywords": ["face", "smile", "happy", "smile"],
    "aliases_ascii": [":)", ":-)"]
  },
  "black_star_dup": {
    "unicode": "2605", "name": "black star", "shortname": ":black_star:",
    "category": "symbols", "keywords": []
  },
  "black_star_alt": {
    "unicode": "2b50", "name": "white medium star", "shortname": ":black_star:",
    "category": "symbols"
  },
  "flag_jp": {
    "unicode": "1f1ef-1f1f5", "name": "japan", "shortname": ":flag_jp:",
    "category": "flags", "keywords": "japan nation"
  },
  "family": {
    "unicode": "1f46a", "unicode_alt": "1f468-200d-1f469-200d-1f466",
    "name": "family", "shortname": ":family:", "category": "people"
  },
  "broken": {"unicode": "zzzz", "name": "broken"},
  "checkered_flag": {
    "unicode": "1f3c1", "name": "chequered flag", "shortname": ":checkered_flag:",
    "category": "flags"
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fixtureSources writes both datasets and returns their paths.
func fixtureSources(t *testing.T) (Sources, string) {
	t.Helper()
	dir := t.TempDir()
	return Sources{
		UnicodeData: writeFile(t, dir, "UnicodeData.txt", baseFixture),
		EmojiData:   writeFile(t, dir, "emoji.json", emojiFixture),
	}, dir
}
