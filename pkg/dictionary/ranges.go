package dictionary

// Range is an inclusive codepoint interval.
type Range struct {
	Lo, Hi rune
}

// DefaultRanges are the Unicode blocks whose symbols are eligible for the base
// table. Anything outside them is rejected even if its category matches.
var DefaultRanges = []Range{
	{0x2000, 0x206f},   // General Punctuation
	{0x2070, 0x209f},   // Superscripts and Subscripts
	{0x20a0, 0x20cf},   // Currency Symbols
	{0x20d0, 0x20ff},   // Combining Diacritical Marks for Symbols
	{0x2100, 0x214f},   // Letterlike Symbols
	{0x2150, 0x218f},   // Number Forms
	{0x2190, 0x21ff},   // Arrows
	{0x2200, 0x22ff},   // Mathematical Operators
	{0x2300, 0x23ff},   // Miscellaneous Technical
	{0x2400, 0x243f},   // Control Pictures
	{0x2440, 0x245f},   // Optical Character Recognition
	{0x2460, 0x24ff},   // Enclosed Alphanumerics
	{0x2500, 0x257f},   // Box Drawing
	{0x2580, 0x259f},   // Block Elements
	{0x25a0, 0x25ff},   // Geometric Shapes
	{0x2600, 0x26ff},   // Miscellaneous Symbols
	{0x2700, 0x27bf},   // Dingbats
	{0x27c0, 0x27ef},   // Miscellaneous Mathematical Symbols-A
	{0x27f0, 0x27ff},   // Supplemental Arrows-A
	{0x2800, 0x28ff},   // Braille Patterns
	{0x2900, 0x297f},   // Supplemental Arrows-B
	{0x2980, 0x29ff},   // Miscellaneous Mathematical Symbols-B
	{0x2a00, 0x2aff},   // Supplemental Mathematical Operators
	{0x2b00, 0x2bff},   // Miscellaneous Symbols and Arrows
	{0x1f300, 0x1f5ff}, // Miscellaneous Symbols and Pictographs
	{0x1f600, 0x1f64f}, // Emoticons
	{0x1f650, 0x1f67f}, // Ornamental Dingbats
	{0x1f680, 0x1f6ff}, // Transport and Map Symbols
	{0x1f900, 0x1f9ff}, // Supplemental Symbols and Pictographs
}

// DefaultCategories are the general categories kept from the base dataset:
// currency, math and other symbols, dash and other punctuation.
var DefaultCategories = []string{"Sc", "Sm", "So", "Pd", "Po"}

func inRanges(ranges []Range, code rune) bool {
	for _, r := range ranges {
		if r.Lo <= code && code <= r.Hi {
			return true
		}
	}
	return false
}
