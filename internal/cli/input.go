// Package cli handles interactive command line sessions for trying queries
// and the input-method key contract without a host.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/suggest"
	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	charStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
)

const (
	promptText = "> "
	maxNames   = 50
)

// tableSource is implemented by resolvers that expose their current table.
type tableSource interface {
	Table() *symbols.Table
}

// InputHandler reads queries from a reader and prints the candidates.
// Lines starting with "/" are commands: /names, /reload, /stats, /quit.
type InputHandler struct {
	resolver     suggest.IResolver
	limit        int
	maxQuery     int
	requestCount int
	in           io.Reader
	out          io.Writer
}

// NewInputHandler creates a handler on stdin/stdout.
func NewInputHandler(resolver suggest.IResolver, limit, maxQuery int) *InputHandler {
	return &InputHandler{
		resolver: resolver,
		limit:    limit,
		maxQuery: maxQuery,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// WithIO swaps the streams, mostly for tests.
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in = in
	h.out = out
	return h
}

// Start runs the loop until input ends or /quit is entered.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "uniserve repl: type a symbol name and press Enter (/quit to exit)")
	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, promptText)
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !h.handleInput(line) {
			return nil
		}
	}
}

// handleInput processes one line. It returns false when the session ends.
func (h *InputHandler) handleInput(line string) bool {
	if strings.HasPrefix(line, "/") {
		return h.handleCommand(line)
	}
	h.requestCount++

	if utils.RuneLen(line) > h.maxQuery {
		log.Errorf("Query too long: %d characters (max %d)", utils.RuneLen(line), h.maxQuery)
		return true
	}
	if !utils.IsValidQuery(line) {
		log.Errorf("Invalid query: %q", line)
		return true
	}

	start := time.Now()
	cands := h.resolver.Resolve(line)
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), line)

	if len(cands) == 0 {
		fmt.Fprintf(h.out, "no symbols found for '%s'\n", line)
		return true
	}
	PrintCandidates(h.out, cands, h.limit)
	return true
}

func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit", "/q":
		return false
	case "/names":
		src, ok := h.resolver.(tableSource)
		if !ok || src.Table() == nil {
			fmt.Fprintln(h.out, "no table loaded")
			return true
		}
		prefix := utils.NormalizeName(strings.Join(fields[1:], " "))
		PrintNames(h.out, src.Table(), prefix, maxNames)
	case "/reload":
		if err := h.resolver.Reload(); err != nil {
			log.Errorf("Reload failed: %v", err)
			return true
		}
		fmt.Fprintln(h.out, "reloaded")
	case "/stats":
		PrintStats(h.out, h.resolver.Stats())
	default:
		fmt.Fprintf(h.out, "unknown command %s (try /names, /reload, /stats, /quit)\n", line)
	}
	return true
}

// PrintCandidates writes up to limit candidates, one numbered label per line.
// A non-positive limit prints all of them.
func PrintCandidates(w io.Writer, cands []suggest.Candidate, limit int) {
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	for i, c := range cands {
		label := strings.TrimPrefix(c.Label, c.Char)
		fmt.Fprintf(w, "%s %s%s\n", indexStyle.Render(fmt.Sprintf("%2d.", i+1)), charStyle.Render(c.Char), label)
	}
}

// PrintNames lists up to limit table names starting with prefix, in
// lexicographic order, followed by a count of the rest.
func PrintNames(w io.Writer, t *symbols.Table, prefix string, limit int) {
	shown, total := 0, 0
	_ = t.EachWithPrefix(prefix, func(e *symbols.Entry) error {
		total++
		if shown >= limit {
			return nil
		}
		shown++
		char := e.Char
		if char == "" && len(e.Aliases) > 0 {
			char = e.Aliases[0]
		}
		fmt.Fprintf(w, "%s %s\n", charStyle.Render(char), e.Name)
		return nil
	})
	if total == 0 {
		fmt.Fprintf(w, "no names start with '%s'\n", prefix)
	} else if total > shown {
		fmt.Fprintf(w, "... %d more\n", total-shown)
	}
}

// PrintStats writes resolver statistics sorted by key.
func PrintStats(w io.Writer, stats map[string]int) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%-18s %d\n", k, stats[k])
	}
}

// PrintInfo writes string key/value pairs sorted by key.
func PrintInfo(w io.Writer, info map[string]string) {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%-18s %s\n", k, info[k])
	}
}
