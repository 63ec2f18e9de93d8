/*
Package ime adapts the resolver to an input-method host.

The host forwards key events to an Engine and applies the commit string it
gets back. The adapter keeps the preedit text, the current candidate list,
the cursor and the page; the host only renders them.

	a := ime.NewAdapter(resolver, 9)
	handled, commit := a.OnKeyEvent('s', 0)

A handled event must not be processed further by the host. A non-empty
commit must be inserted into the document whether or not the event was
handled.
*/
package ime

// Engine is the contract between an input-method host and uniserve.
type Engine interface {
	// OnKeyEvent processes one key event.
	OnKeyEvent(key Key, mods Modifier) (handled bool, commit string)
	OnFocusIn()
	OnFocusOut()
	OnReset()
}
