package dictionary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the dataset file formats the loader understands
type FileFormat int

const (
	FormatUnknown     FileFormat = iota
	FormatUnicodeData            // semicolon-delimited UnicodeData.txt
	FormatEmojiJSON              // emoji metadata keyed by id
	FormatCustomJSON             // flat name -> char JSON object
	FormatCustomTOML             // flat name = "char" TOML table
)

// Role tells DetectFileFormat which source a file is meant to feed.
type Role int

const (
	RoleBase Role = iota
	RoleEmoji
	RoleCustom
)

// ErrUnknownFormat is returned when a file cannot serve the requested role.
var ErrUnknownFormat = errors.New("unknown dataset format")

// FormatInfo contains metadata about a dataset file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatUnicodeData: {
		Format:      FormatUnicodeData,
		Description: "Unicode character database",
		Extensions:  []string{".txt"},
		MinSize:     0,
	},
	FormatEmojiJSON: {
		Format:      FormatEmojiJSON,
		Description: "Emoji metadata",
		Extensions:  []string{".json"},
		MinSize:     2, // "{}"
	},
	FormatCustomJSON: {
		Format:      FormatCustomJSON,
		Description: "Custom symbols (JSON)",
		Extensions:  []string{".json"},
		MinSize:     0,
	},
	FormatCustomTOML: {
		Format:      FormatCustomTOML,
		Description: "Custom symbols (TOML)",
		Extensions:  []string{".toml"},
		MinSize:     0,
	},
}

// DetectFileFormat picks the format of filename for the given role from its
// extension.
func DetectFileFormat(filename string, role Role) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var candidates []FileFormat
	switch role {
	case RoleBase:
		candidates = []FileFormat{FormatUnicodeData}
	case RoleEmoji:
		candidates = []FileFormat{FormatEmojiJSON}
	case RoleCustom:
		candidates = []FileFormat{FormatCustomJSON, FormatCustomTOML}
	}

	for _, f := range candidates {
		for _, e := range supportedFormats[f].Extensions {
			if e == ext {
				return f, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// ValidateFileFormat checks that filename exists and is large enough for format
func ValidateFileFormat(filename string, format FileFormat) error {
	info, ok := supportedFormats[format]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	stat, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%s is a directory, expected %s", filename, info.Description)
	}
	if stat.Size() < info.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for %s (minimum: %d bytes)",
			filename, stat.Size(), info.Description, info.MinSize)
	}
	log.Debugf("%s validated as %s", filename, info.Description)
	return nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
