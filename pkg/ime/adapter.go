package ime

import (
	"github.com/bastiangx/uniserve/internal/logger"
	"github.com/bastiangx/uniserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// MaxPageSize is the number of candidates digit keys can reach.
const MaxPageSize = 9

// Resolver is the part of the query interface the adapter needs.
type Resolver interface {
	Resolve(query string) []suggest.Candidate
}

// Adapter implements Engine over a Resolver. It is not safe for concurrent
// use; hosts deliver events one at a time.
type Adapter struct {
	resolver   Resolver
	preedit    []rune
	candidates []suggest.Candidate
	cursor     int
	pageSize   int
	logger     *log.Logger
}

var _ Engine = (*Adapter)(nil)

// NewAdapter creates an adapter showing pageSize candidates per page.
func NewAdapter(r Resolver, pageSize int) *Adapter {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return &Adapter{
		resolver: r,
		pageSize: pageSize,
		logger:   logger.New("ime"),
	}
}

// OnKeyEvent implements Engine.
func (a *Adapter) OnKeyEvent(key Key, mods Modifier) (bool, string) {
	a.logger.Debug("key event", "key", key, "mods", mods, "preedit", string(a.preedit))
	if mods.Has(ModRelease) {
		return false, ""
	}

	if len(a.preedit) > 0 {
		if handled, commit, ok := a.editKey(key); ok {
			return handled, commit
		}
	}

	if key.IsLetter() || key == KeySpace {
		if key == KeySpace && len(a.preedit) == 0 {
			// let spaces separate consecutive symbols
			return true, " "
		}
		if !mods.Has(ModControl) && !mods.Has(ModAlt) {
			a.preedit = append(a.preedit, rune(key))
			a.refresh()
			return true, ""
		}
		return false, ""
	}

	if key.IsASCII() && len(a.preedit) > 0 {
		return false, a.commit(string(a.preedit))
	}
	return false, ""
}

// editKey handles the keys that act on a non-empty preedit. ok is false when
// key is not one of them.
func (a *Adapter) editKey(key Key) (handled bool, commit string, ok bool) {
	switch key {
	case KeyReturn:
		if c, sel := a.Selected(); sel {
			return true, a.commit(c.Char), true
		}
		return true, a.commit(string(a.preedit)), true
	case KeyEscape:
		a.clear()
		return true, "", true
	case KeyBackSpace:
		a.preedit = a.preedit[:len(a.preedit)-1]
		a.refresh()
		return true, "", true
	case KeyPageUp:
		a.PageUp()
		return true, "", true
	case KeyPageDown:
		a.PageDown()
		return true, "", true
	case KeyUp:
		a.CursorUp()
		return true, "", true
	case KeyDown:
		a.CursorDown()
		return true, "", true
	case KeyLeft, KeyRight:
		return true, "", true
	}

	if d := key.Digit(); d > 0 {
		if d > a.pageSize {
			return false, "", true
		}
		pos := a.pageStart() + d - 1
		if pos >= len(a.candidates) {
			return false, "", true
		}
		return true, a.commit(a.candidates[pos].Char), true
	}
	return false, "", false
}

// OnFocusIn implements Engine.
func (a *Adapter) OnFocusIn() {
	a.logger.Debug("focus in")
}

// OnFocusOut implements Engine.
func (a *Adapter) OnFocusOut() {
	a.logger.Debug("focus out")
	a.OnReset()
}

// OnReset implements Engine.
func (a *Adapter) OnReset() {
	a.clear()
}

func (a *Adapter) commit(text string) string {
	a.clear()
	return text
}

func (a *Adapter) clear() {
	a.preedit = a.preedit[:0]
	a.candidates = nil
	a.cursor = 0
}

func (a *Adapter) refresh() {
	a.cursor = 0
	if len(a.preedit) == 0 {
		a.candidates = nil
		return
	}
	a.candidates = a.resolver.Resolve(string(a.preedit))
}

func (a *Adapter) pageStart() int {
	return (a.cursor / a.pageSize) * a.pageSize
}

// Preedit returns the text typed so far.
func (a *Adapter) Preedit() string {
	return string(a.preedit)
}

// Candidates returns every candidate for the current preedit.
func (a *Adapter) Candidates() []suggest.Candidate {
	return a.candidates
}

// Cursor returns the index of the highlighted candidate.
func (a *Adapter) Cursor() int {
	return a.cursor
}

// Selected returns the highlighted candidate.
func (a *Adapter) Selected() (suggest.Candidate, bool) {
	if a.cursor < len(a.candidates) {
		return a.candidates[a.cursor], true
	}
	return suggest.Candidate{}, false
}

// Page returns the visible candidates and the cursor position within them.
func (a *Adapter) Page() ([]suggest.Candidate, int) {
	start := a.pageStart()
	if start >= len(a.candidates) {
		return nil, 0
	}
	end := min(start+a.pageSize, len(a.candidates))
	return a.candidates[start:end], a.cursor - start
}

// PageUp moves the cursor one page back. It reports whether it moved.
func (a *Adapter) PageUp() bool {
	if a.cursor < a.pageSize {
		return false
	}
	a.cursor -= a.pageSize
	return true
}

// PageDown moves the cursor one page forward, clamped to the last candidate.
func (a *Adapter) PageDown() bool {
	next := a.pageStart() + a.pageSize
	if next >= len(a.candidates) {
		return false
	}
	a.cursor = min(a.cursor+a.pageSize, len(a.candidates)-1)
	return true
}

// CursorUp moves the highlight to the previous candidate.
func (a *Adapter) CursorUp() bool {
	if a.cursor == 0 {
		return false
	}
	a.cursor--
	return true
}

// CursorDown moves the highlight to the next candidate.
func (a *Adapter) CursorDown() bool {
	if a.cursor+1 >= len(a.candidates) {
		return false
	}
	a.cursor++
	return true
}
