// Package dictionary holds the rows of the translation dictionary and the
// snapshot format they are persisted in.
//
// A Sequence is an ordered snapshot of rows. Every operation returns a new
// Sequence and leaves its receiver untouched, so the editor can hand the
// current value to the reorder controller or a store without copying.
package dictionary

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Lang identifies one of the dictionary languages.
type Lang string

// Supported languages.
const (
	Korean  Lang = "ko"
	English Lang = "en"
	Arabic  Lang = "ar"
)

// Langs lists the languages in column order.
var Langs = []Lang{Korean, English, Arabic}

// ParseLang converts a language code.
func ParseLang(s string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case Korean:
		return Korean, nil
	case English:
		return English, nil
	case Arabic:
		return Arabic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLang, s)
}

// Field identifies an editable column of a row.
type Field uint8

const (
	FieldKey Field = iota
	FieldKorean
	FieldDescription
	FieldEnglish
	FieldArabic
)

// Fields lists the editable fields in column order.
var Fields = []Field{FieldKorean, FieldDescription, FieldKey, FieldEnglish, FieldArabic}

// String returns the column title.
func (f Field) String() string {
	switch f {
	case FieldKey:
		return "key"
	case FieldKorean:
		return "korean"
	case FieldDescription:
		return "description"
	case FieldEnglish:
		return "english"
	case FieldArabic:
		return "arabic"
	default:
		return "unknown"
	}
}

// ParseField converts a column title back to a Field.
func ParseField(s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Fields {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Row is one dictionary entry.
type Row struct {
	// ID is a process-local identity used to track a row while it moves.
	// It is not persisted.
	ID string

	// Key is the English key the row is stored under.
	Key string

	Korean      string
	Description string
	English     string
	Arabic      string
	Verified    bool
}

// NewRow returns an empty row with a fresh identity.
func NewRow() Row {
	return Row{ID: uuid.NewString()}
}

// Get returns the value of field f.
func (r Row) Get(f Field) string {
	switch f {
	case FieldKey:
		return r.Key
	case FieldKorean:
		return r.Korean
	case FieldDescription:
		return r.Description
	case FieldEnglish:
		return r.English
	case FieldArabic:
		return r.Arabic
	}
	return ""
}

// With returns a copy of r with field f set to value. Text is trimmed and
// NFC-normalised so decomposed Hangul typed on some platforms compares
// equal to its composed form.
func (r Row) With(f Field, value string) Row {
	value = norm.NFC.String(strings.TrimSpace(value))
	switch f {
	case FieldKey:
		r.Key = value
	case FieldKorean:
		r.Korean = value
	case FieldDescription:
		r.Description = value
	case FieldEnglish:
		r.English = value
	case FieldArabic:
		r.Arabic = value
	}
	return r
}

// Text returns the row's text in lang.
func (r Row) Text(lang Lang) string {
	switch lang {
	case Korean:
		return r.Korean
	case English:
		return r.English
	case Arabic:
		return r.Arabic
	}
	return ""
}

// IsBlank reports whether the row has no content at all.
func (r Row) IsBlank() bool {
	return r.Key == "" && r.Korean == "" && r.Description == "" &&
		r.English == "" && r.Arabic == ""
}

// StorageKey returns the key the row is persisted under. Rows without an
// English key fall back to a key derived from their identity.
func (r Row) StorageKey() string {
	if r.Key != "" {
		return r.Key
	}
	id := strings.ReplaceAll(r.ID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "row"
	}
	return "key_" + id
}
