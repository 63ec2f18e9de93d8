package utils

// SeenFilter drops repeated characters within one result list
type SeenFilter struct {
	seen map[string]bool
}

// NewSeenFilter creates an empty filter
func NewSeenFilter() *SeenFilter {
	return &SeenFilter{seen: make(map[string]bool)}
}

// ShouldInclude reports whether char is new, marking it as seen.
// Characters compare exactly; no case folding is applied.
func (f *SeenFilter) ShouldInclude(char string) bool {
	if f.seen[char] {
		return false
	}
	f.seen[char] = true
	return true
}

// Seen reports whether char was already included
func (f *SeenFilter) Seen(char string) bool {
	return f.seen[char]
}

// IsValidQuery checks if a query should be resolved at all.
// Rejects blank input and input carrying control characters.
func IsValidQuery(s string) bool {
	if IsOnlySpace(s) {
		return false
	}
	return !HasControl(s)
}
