// Package symbols holds the merged name table that every query runs against.
//
// A Table is produced once by a Builder and is read-only afterwards, so it can
// be shared by any number of concurrent readers. Reloading means building a new
// Table and swapping the reference, never mutating one in place.
package symbols

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// DiagnosticThreshold is the entry count at or below which a table is treated
// as a failed load. Such tables only carry diagnostic pseudo-entries.
const DiagnosticThreshold = 10

// DiagnosticChar is the character stored on diagnostic pseudo-entries.
const DiagnosticChar = "ERROR"

// Entry is one canonical name and the characters answering to it.
type Entry struct {
	Name       string
	Char       string
	Aliases    []string
	FromEmoji  bool
	Custom     bool
	Diagnostic bool
}

// HasChar reports whether the entry owns a primary character.
func (e *Entry) HasChar() bool {
	return e.Char != ""
}

// HasAliases reports whether any alternate character answers to the name.
func (e *Entry) HasAliases() bool {
	return len(e.Aliases) > 0
}

// Table is the immutable result of a load.
type Table struct {
	entries     map[string]*Entry
	names       *patricia.Trie
	charToName  map[string]string
	shortLabels map[string]string
	longNames   map[string]string
	ascii       map[string]string
}

func newTable() *Table {
	return &Table{
		entries:     make(map[string]*Entry),
		charToName:  make(map[string]string),
		shortLabels: make(map[string]string),
		longNames:   make(map[string]string),
		ascii:       make(map[string]string),
	}
}

// Diagnostic returns a table holding a single pseudo-entry named by message.
func Diagnostic(message string) *Table {
	b := NewBuilder()
	b.t.entries[message] = &Entry{Name: message, Char: DiagnosticChar, Diagnostic: true}
	return b.Build()
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// IsDegenerate reports whether the table is a load-failure signal.
func (t *Table) IsDegenerate() bool {
	return len(t.entries) <= DiagnosticThreshold
}

// Get looks up an entry by canonical name.
func (t *Table) Get(name string) (*Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Each visits every entry. Returning an error from fn stops the walk.
func (t *Table) Each(fn func(e *Entry) error) error {
	return t.names.Visit(func(p patricia.Prefix, item patricia.Item) error {
		return fn(item.(*Entry))
	})
}

// EachWithPrefix visits the entries whose name starts with prefix.
func (t *Table) EachWithPrefix(prefix string, fn func(e *Entry) error) error {
	return t.names.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		return fn(item.(*Entry))
	})
}

// Entries returns all entries sorted by name.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// NameOf returns the first canonical name registered for char.
func (t *Table) NameOf(char string) (string, bool) {
	name, ok := t.charToName[char]
	return name, ok
}

// ShortLabel returns the emoji shortname known for char, in underscore form.
func (t *Table) ShortLabel(char string) (string, bool) {
	label, ok := t.shortLabels[char]
	return label, ok
}

// LongName returns the descriptive name recorded for char.
func (t *Table) LongName(char string) (string, bool) {
	name, ok := t.longNames[char]
	return name, ok
}

// Shortcut resolves an exact ASCII shortcut such as ":)".
func (t *Table) Shortcut(ascii string) (string, bool) {
	char, ok := t.ascii[ascii]
	return char, ok
}

// Shortcuts returns the number of registered ASCII shortcuts.
func (t *Table) Shortcuts() int {
	return len(t.ascii)
}
