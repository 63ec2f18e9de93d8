/*
Package dictionary builds the symbol table from its three sources.

Sources are applied in ascending precedence:

 1. the base dataset (UnicodeData.txt), filtered by category and block,
 2. the emoji dataset, adding shortnames, descriptive names, keyword aliases
    and ASCII shortcuts,
 3. custom overrides, each one winning any name collision.

Malformed base or emoji records are skipped. A custom source that cannot be
read or parsed is fatal to the whole table, which is then replaced by a single
diagnostic entry carrying the error text, so the failure shows up as a query
result instead of an error.
*/
package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/charmbracelet/log"
)

const (
	// DefaultKeywordGenericThreshold drops keywords shared by this many emoji
	// records or more. Historical datasets were tuned with 20 and 25.
	DefaultKeywordGenericThreshold = 20
	// DefaultFlagCategory is the emoji category whose names get "flag of".
	DefaultFlagCategory = "flags"
)

// ErrNoSources is reported when neither base nor emoji data produced entries.
var ErrNoSources = errors.New("no symbol data loaded")

// Sources lists the files a Loader reads. Custom is in ascending precedence.
type Sources struct {
	UnicodeData string
	EmojiData   string
	Custom      []string
}

// Options holds the tunable heuristics of a load.
type Options struct {
	KeywordGenericThreshold int
	FlagCategory            string
	Categories              []string
	Ranges                  []Range
}

// DefaultOptions returns the stock heuristics.
func DefaultOptions() Options {
	return Options{
		KeywordGenericThreshold: DefaultKeywordGenericThreshold,
		FlagCategory:            DefaultFlagCategory,
		Categories:              DefaultCategories,
		Ranges:                  DefaultRanges,
	}
}

// Stats describes the last load.
type Stats struct {
	BaseAccepted    int
	BaseSkipped     int
	EmojiRecords    int
	EmojiSkipped    int
	Aliases         int
	LongNames       int
	GenericKeywords int
	Shortcuts       int
	CustomEntries   int
	Entries         int
	Failed          bool
	Duration        time.Duration
}

// Loader reads Sources into symbol tables.
type Loader struct {
	sources Sources
	opts    Options
	stats   Stats
	mu      sync.RWMutex
}

// NewLoader creates a loader. Zero-valued options fall back to defaults.
func NewLoader(src Sources, opts Options) *Loader {
	def := DefaultOptions()
	// negative threshold disables the generic keyword filter
	if opts.KeywordGenericThreshold == 0 {
		opts.KeywordGenericThreshold = def.KeywordGenericThreshold
	}
	if opts.FlagCategory == "" {
		opts.FlagCategory = def.FlagCategory
	}
	if opts.Categories == nil {
		opts.Categories = def.Categories
	}
	if opts.Ranges == nil {
		opts.Ranges = def.Ranges
	}
	return &Loader{sources: src, opts: opts}
}

// Sources returns the files this loader reads.
func (l *Loader) Sources() Sources {
	return l.sources
}

// Stats returns the statistics of the most recent Load.
func (l *Loader) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stats
}

// Load builds a fresh table. It never returns nil; failures surface as
// diagnostic entries.
func (l *Loader) Load() *symbols.Table {
	start := time.Now()
	b := symbols.NewBuilder()
	var stats Stats

	l.loadBase(b, &stats)
	l.loadEmoji(b, &stats)

	if b.Len() == 0 {
		msg := fmt.Sprintf("%v from %s", ErrNoSources, l.describeSources())
		log.Warn(msg)
		b.Add(msg, symbols.DiagnosticChar, false)
		if e, ok := b.Lookup(msg); ok {
			e.Diagnostic = true
		}
	}

	for _, path := range l.sources.Custom {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Debugf("No custom file at %s", path)
			continue
		}
		log.Debugf("Loading custom symbols from %s", path)
		overrides, err := ReadCustom(path)
		if err != nil {
			cerr := &CustomError{Path: path, Err: err}
			log.Error(cerr.Error())
			stats.Failed = true
			stats.Entries = 1
			stats.Duration = time.Since(start)
			l.setStats(stats)
			return symbols.Diagnostic(cerr.Error())
		}
		stats.CustomEntries += ApplyCustom(b, overrides)
	}

	stats.Entries = b.Len()
	stats.Duration = time.Since(start)
	l.setStats(stats)

	log.Debug("Symbol table built",
		"entries", stats.Entries,
		"base", stats.BaseAccepted,
		"emoji", stats.EmojiRecords,
		"aliases", stats.Aliases,
		"shortcuts", stats.Shortcuts,
		"custom", stats.CustomEntries,
		"took", stats.Duration)
	return b.Build()
}

func (l *Loader) loadBase(b *symbols.Builder, stats *Stats) {
	path := l.sources.UnicodeData
	if path == "" {
		return
	}
	if err := ValidateFileFormat(path, FormatUnicodeData); err != nil {
		log.Warnf("Skipping base dataset: %v", err)
		return
	}
	file, err := os.Open(path)
	if err != nil {
		log.Warnf("Failed to open base dataset %s: %v", path, err)
		return
	}
	defer file.Close()

	accepted, skipped, err := ReadUnicodeData(b, file, l.opts)
	if err != nil {
		log.Warnf("Base dataset %s partially read: %v", path, err)
	}
	stats.BaseAccepted = accepted
	stats.BaseSkipped = skipped
	log.Debugf("Base dataset %s: %d accepted, %d malformed", path, accepted, skipped)
}

func (l *Loader) loadEmoji(b *symbols.Builder, stats *Stats) {
	path := l.sources.EmojiData
	if path == "" {
		return
	}
	if err := ValidateFileFormat(path, FormatEmojiJSON); err != nil {
		log.Warnf("Skipping emoji dataset: %v", err)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("Failed to read emoji dataset %s: %v", path, err)
		return
	}
	records, skipped, err := ParseEmoji(data)
	if err != nil {
		log.Warnf("Skipping emoji dataset %s: %v", path, err)
		return
	}
	es := ApplyEmoji(b, records, l.opts)
	stats.EmojiRecords = es.Records
	stats.EmojiSkipped = skipped
	stats.Aliases = es.Aliases
	stats.LongNames = es.LongNames
	stats.GenericKeywords = es.GenericKeywords
	stats.Shortcuts = es.Shortcuts
	log.Debugf("Emoji dataset %s: %d records, %d skipped, %d generic keywords dropped",
		path, es.Records, skipped, es.GenericKeywords)
}

func (l *Loader) describeSources() string {
	var parts []string
	for _, p := range []string{l.sources.UnicodeData, l.sources.EmojiData} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "(no dataset configured)"
	}
	return strings.Join(parts, ", ")
}

func (l *Loader) setStats(s Stats) {
	l.mu.Lock()
	l.stats = s
	l.mu.Unlock()
}
