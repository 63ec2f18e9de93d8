// Package suggest is the query side: ranking table entries against a query and
// turning the ranked matches into deduplicated, labelled candidates.
package suggest

// IResolver defines the interface every front end (server, cli, ime) resolves through
type IResolver interface {
	// Resolve returns the ordered candidates for a query
	Resolve(query string) []Candidate

	// Reload rebuilds the table and swaps it in atomically
	Reload() error

	// Stats returns statistics about the current table
	Stats() map[string]int
}
