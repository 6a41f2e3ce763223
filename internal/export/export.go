// Package export writes the dictionary in the formats translators and
// client applications consume: one {key: text} file per language as JSON
// or YAML, and a spreadsheet of every column that can be edited offline
// and imported back.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/trilex/internal/dictionary"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for an unsupported format.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat converts a format name; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FileName returns the conventional file name for a language export,
// e.g. "ko.json".
func FileName(lang dictionary.Lang, f Format) string {
	if f == FormatXLSX {
		return "dictionary.xlsx"
	}
	return string(lang) + "." + string(f)
}

// Language writes the {key: text} table for lang in key order. Rows
// without an English key are left out.
func Language(w io.Writer, seq dictionary.Sequence, lang dictionary.Lang, f Format) error {
	table := seq.Language(lang)
	switch f {
	case FormatJSON:
		return writeJSON(w, table)
	case FormatYAML:
		return writeYAML(w, table)
	case FormatXLSX:
		return WriteXLSX(w, seq)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
