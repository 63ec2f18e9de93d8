package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/uniserve/pkg/ime"
)

var namedKeys = map[string]ime.Key{
	"return":    ime.KeyReturn,
	"enter":     ime.KeyReturn,
	"esc":       ime.KeyEscape,
	"escape":    ime.KeyEscape,
	"bs":        ime.KeyBackSpace,
	"backspace": ime.KeyBackSpace,
	"tab":       ime.KeyTab,
	"pgup":      ime.KeyPageUp,
	"pgdn":      ime.KeyPageDown,
	"up":        ime.KeyUp,
	"down":      ime.KeyDown,
	"left":      ime.KeyLeft,
	"right":     ime.KeyRight,
	"space":     ime.KeySpace,
}

// KeyEvent is one parsed key press.
type KeyEvent struct {
	Key  ime.Key
	Mods ime.Modifier
}

// ParseKeys turns a line such as "heart<down><return>" into key events.
// Names in angle brackets are special keys; "<c-x>" and "<a-x>" add
// Control and Alt. Everything else is typed rune by rune; bytes that are not
// valid UTF-8 are dropped.
func ParseKeys(line string) ([]KeyEvent, error) {
	var events []KeyEvent
	for len(line) > 0 {
		if line[0] == '<' {
			end := strings.IndexByte(line, '>')
			if end > 1 {
				ev, err := parseNamedKey(line[1:end])
				if err != nil {
					return nil, err
				}
				events = append(events, ev)
				line = line[end+1:]
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(line)
		line = line[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		events = append(events, KeyEvent{Key: ime.Key(r)})
	}
	return events, nil
}

func parseNamedKey(name string) (KeyEvent, error) {
	name = strings.ToLower(name)
	var mods ime.Modifier
	for {
		switch {
		case strings.HasPrefix(name, "c-"):
			mods |= ime.ModControl
		case strings.HasPrefix(name, "a-"):
			mods |= ime.ModAlt
		default:
			if k, ok := namedKeys[name]; ok {
				return KeyEvent{Key: k, Mods: mods}, nil
			}
			if r := []rune(name); len(r) == 1 && mods != 0 {
				return KeyEvent{Key: ime.Key(r[0]), Mods: mods}, nil
			}
			return KeyEvent{}, fmt.Errorf("unknown key <%s>", name)
		}
		name = name[2:]
	}
}

// KeySession feeds typed key sequences to an input-method engine and shows
// what a host would render after every line.
type KeySession struct {
	adapter *ime.Adapter
	in      io.Reader
	out     io.Writer
}

// NewKeySession creates a session over adapter on stdin/stdout.
func NewKeySession(adapter *ime.Adapter) *KeySession {
	return &KeySession{adapter: adapter, in: os.Stdin, out: os.Stdout}
}

// WithIO swaps the streams, mostly for tests.
func (s *KeySession) WithIO(in io.Reader, out io.Writer) *KeySession {
	s.in = in
	s.out = out
	return s
}

// Start runs until input ends.
func (s *KeySession) Start() error {
	fmt.Fprintln(s.out, "uniserve keys: type text and <return>, <down>, <pgdn>, <esc>, <bs>, digits")
	s.adapter.OnFocusIn()
	defer s.adapter.OnFocusOut()

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, promptText)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		events, err := ParseKeys(scanner.Text())
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		s.feed(events)
	}
}

func (s *KeySession) feed(events []KeyEvent) {
	var committed strings.Builder
	for _, ev := range events {
		handled, commit := s.adapter.OnKeyEvent(ev.Key, ev.Mods)
		committed.WriteString(commit)
		// an unhandled key reaches the document after any commit
		if !handled && ev.Mods == 0 && ev.Key.IsASCII() {
			committed.WriteRune(rune(ev.Key))
		}
	}

	if committed.Len() > 0 {
		fmt.Fprintf(s.out, "commit: %q\n", committed.String())
	}
	if preedit := s.adapter.Preedit(); preedit != "" {
		fmt.Fprintf(s.out, "preedit: %s\n", preedit)
		page, cursor := s.adapter.Page()
		for i, c := range page {
			marker := " "
			if i == cursor {
				marker = ">"
			}
			fmt.Fprintf(s.out, "%s %d. %s\n", marker, i+1, c.Label)
		}
	}
}
