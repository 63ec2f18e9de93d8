package dictionary

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/tidwall/gjson"
)

// Override is one custom name -> character pair.
type Override struct {
	Name string
	Char string
}

// CustomError describes a custom source that could not be applied.
type CustomError struct {
	Path string
	Err  error
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("failed to load custom file %s: %v", e.Path, e.Err)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// ReadCustom loads the overrides stored in path. The format follows the
// file extension.
func ReadCustom(path string) ([]Override, error) {
	format, err := DetectFileFormat(path, RoleCustom)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCustomTOML:
		return parseCustomTOML(data)
	default:
		return parseCustomJSON(data)
	}
}

func parseCustomJSON(data []byte) ([]Override, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("expected a JSON object of name to character")
	}

	var out []Override
	var bad error
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			bad = fmt.Errorf("value for %q is not a string", key.String())
			return false
		}
		out = append(out, Override{Name: key.String(), Char: value.String()})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return out, nil
}

func parseCustomTOML(data []byte) ([]Override, error) {
	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Override, 0, len(names))
	for _, name := range names {
		char, ok := raw[name].(string)
		if !ok {
			return nil, fmt.Errorf("value for %q is not a string", name)
		}
		out = append(out, Override{Name: name, Char: char})
	}
	return out, nil
}

// ApplyCustom writes overrides into b. Each one wins any name collision.
func ApplyCustom(b *symbols.Builder, overrides []Override) int {
	applied := 0
	for _, o := range overrides {
		name := utils.NormalizeName(o.Name)
		if name == "" || o.Char == "" {
			continue
		}
		b.Override(name, o.Char)
		b.RegisterChar(o.Char, name)
		applied++
	}
	return applied
}
