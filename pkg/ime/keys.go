package ime

import "fmt"

// Key identifies a key press. Printable keys are their own rune; the named
// keys below sit past the Unicode range so they can never collide.
type Key rune

const (
	KeyReturn Key = 0x110000 + iota
	KeyEscape
	KeyBackSpace
	KeyTab
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

// KeySpace is the space bar.
const KeySpace Key = ' '

var keyNames = map[Key]string{
	KeyReturn:    "Return",
	KeyEscape:    "Escape",
	KeyBackSpace: "BackSpace",
	KeyTab:       "Tab",
	KeyPageUp:    "Page_Up",
	KeyPageDown:  "Page_Down",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeySpace:     "space",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= 0 && k < 0x110000 {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}

// IsASCII reports whether k is a 7-bit character key.
func (k Key) IsASCII() bool {
	return k >= 0 && k < 128
}

// IsLetter reports whether k is an ASCII letter.
func (k Key) IsLetter() bool {
	return (k >= 'a' && k <= 'z') || (k >= 'A' && k <= 'Z')
}

// Digit returns 1..9 for the keys '1'..'9' and 0 otherwise.
func (k Key) Digit() int {
	if k >= '1' && k <= '9' {
		return int(k - '0')
	}
	return 0
}

// Modifier is a bitmask of modifier state accompanying a key event.
type Modifier uint8

const (
	ModRelease Modifier = 1 << iota
	ModShift
	ModControl
	ModAlt
)

// Has reports whether every bit of m2 is set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}
