package symbols

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Builder accumulates entries during a load. It is not safe for concurrent use
// and must not be touched after Build.
type Builder struct {
	t *Table
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{t: newTable()}
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	return len(b.t.entries)
}

// Lookup returns the entry stored under name.
func (b *Builder) Lookup(name string) (*Entry, bool) {
	e, ok := b.t.entries[name]
	return e, ok
}

// Add creates an entry for name unless one exists. It reports whether a new
// entry was created; the existing entry is returned untouched otherwise.
func (b *Builder) Add(name, char string, fromEmoji bool) (*Entry, bool) {
	if e, ok := b.t.entries[name]; ok {
		return e, false
	}
	e := &Entry{Name: name, Char: char, FromEmoji: fromEmoji}
	b.t.entries[name] = e
	return e, true
}

// Override replaces whatever is stored under name with a custom entry.
func (b *Builder) Override(name, char string) *Entry {
	e := &Entry{Name: name, Char: char, Custom: true}
	b.t.entries[name] = e
	return e
}

// AddAlias appends char to the alias set of the entry called name, creating an
// alias-only entry when name is unknown. Characters equal to the primary or
// already present are ignored. It reports whether the set grew.
func (b *Builder) AddAlias(name, char string) bool {
	e, ok := b.t.entries[name]
	if !ok {
		e = &Entry{Name: name}
		b.t.entries[name] = e
	}
	if char == "" || char == e.Char {
		return false
	}
	for _, a := range e.Aliases {
		if a == char {
			return false
		}
	}
	e.Aliases = append(e.Aliases, char)
	return true
}

// Reachable reports whether char already resolves to some name.
func (b *Builder) Reachable(char string) bool {
	_, ok := b.t.charToName[char]
	return ok
}

// RegisterChar records name as the canonical name of char. First writer wins.
func (b *Builder) RegisterChar(char, name string) bool {
	return setOnce(b.t.charToName, char, name)
}

// RegisterShortLabel records the shortname of char. First writer wins.
func (b *Builder) RegisterShortLabel(char, label string) bool {
	return setOnce(b.t.shortLabels, char, label)
}

// RegisterLongName records the descriptive name of char. First writer wins.
func (b *Builder) RegisterLongName(char, name string) bool {
	return setOnce(b.t.longNames, char, name)
}

// RegisterShortcut maps an ASCII shortcut to char. First writer wins.
func (b *Builder) RegisterShortcut(ascii, char string) bool {
	return setOnce(b.t.ascii, ascii, char)
}

// Build freezes the accumulated entries into a Table.
func (b *Builder) Build() *Table {
	t := b.t
	b.t = nil

	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	t.names = patricia.NewTrie()
	for _, name := range names {
		t.names.Insert(patricia.Prefix(name), t.entries[name])
	}
	return t
}

func setOnce(m map[string]string, key, value string) bool {
	if key == "" {
		return false
	}
	if _, ok := m[key]; ok {
		return false
	}
	m[key] = value
	return true
}
