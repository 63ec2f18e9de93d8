package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/symbols"
)

// BaseRecord is one accepted line of the base dataset.
type BaseRecord struct {
	Code     rune
	Name     string
	Category string
}

// parseBaseLine splits a UnicodeData.txt line. Only the first three fields
// are consumed.
func parseBaseLine(line string) (BaseRecord, bool) {
	fields := strings.SplitN(line, ";", 4)
	if len(fields) < 3 {
		return BaseRecord{}, false
	}
	code, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 16, 32)
	if err != nil || !utf8.ValidRune(rune(code)) {
		return BaseRecord{}, false
	}
	name := strings.TrimSpace(fields[1])
	if name == "" || strings.HasPrefix(name, "<") {
		return BaseRecord{}, false
	}
	return BaseRecord{
		Code:     rune(code),
		Name:     name,
		Category: strings.TrimSpace(fields[2]),
	}, true
}

// ReadUnicodeData feeds the base dataset into b. Malformed lines and records
// outside the category or block allow-lists are skipped. Only reader errors
// are returned.
func ReadUnicodeData(b *symbols.Builder, r io.Reader, opts Options) (accepted, skipped int, err error) {
	categories := make(map[string]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		categories[c] = true
	}

	br := bufio.NewReaderSize(r, maxLineLength)
	for {
		line, tooLong, rerr := readLine(br)
		switch {
		case tooLong:
			skipped++
		case strings.TrimSpace(line) == "":
		default:
			if rec, ok := parseBaseLine(line); !ok {
				skipped++
			} else if categories[rec.Category] && inRanges(opts.Ranges, rec.Code) {
				char := string(rec.Code)
				name := utils.NormalizeName(rec.Name)
				b.Add(name, char, false)
				b.RegisterChar(char, name)
				accepted++
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return accepted, skipped, fmt.Errorf("reading base dataset: %w", rerr)
		}
	}
	return accepted, skipped, nil
}

// maxLineLength bounds one base dataset line. Longer lines are malformed and
// skipped whole.
const maxLineLength = 64 * 1024

// readLine returns the next line without its terminator. A line that does not
// fit the reader's buffer is drained and reported as tooLong.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	data, err := br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = br.ReadSlice('\n')
		}
		return "", true, err
	}
	return strings.TrimRight(string(data), "\r\n"), false, err
}
