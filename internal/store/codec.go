package store

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/trilex/internal/dictionary"
)

// Dictionary file names.
const (
	FileKorean       = "ko.json"
	FileEnglish      = "en.json"
	FileArabic       = "ar.json"
	FileDescriptions = "description.json"
	FileVerified     = "verification.json"
)

// Files lists the dictionary files in save order.
var Files = []string{FileKorean, FileEnglish, FileArabic, FileDescriptions, FileVerified}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// Decode builds a snapshot from file contents. Missing or empty files are
// empty tables.
func Decode(files map[string][]byte) (dictionary.Snapshot, error) {
	snap := dictionary.NewSnapshot()
	texts := map[string]*dictionary.Table[string]{
		FileKorean:       snap.Korean,
		FileEnglish:      snap.English,
		FileArabic:       snap.Arabic,
		FileDescriptions: snap.Descriptions,
	}
	for name, table := range texts {
		err := eachField(name, files[name], func(key string, v gjson.Result) {
			table.Set(key, v.String())
		})
		if err != nil {
			return dictionary.Snapshot{}, err
		}
	}
	err := eachField(FileVerified, files[FileVerified], func(key string, v gjson.Result) {
		snap.Verified.Set(key, v.Bool())
	})
	if err != nil {
		return dictionary.Snapshot{}, err
	}
	return snap, nil
}

// eachField visits the members of a JSON object in document order.
func eachField(name string, data []byte, fn func(key string, v gjson.Result)) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%s: %w: invalid JSON", name, ErrMalformed)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("%s: %w: not an object", name, ErrMalformed)
	}
	doc.ForEach(func(k, v gjson.Result) bool {
		fn(k.String(), v)
		return true
	})
	return nil
}

// Encode renders a snapshot as indented JSON files, keys in row order.
func Encode(snap dictionary.Snapshot) (map[string][]byte, error) {
	out := make(map[string][]byte, len(Files))
	texts := map[string]*dictionary.Table[string]{
		FileKorean:       snap.Korean,
		FileEnglish:      snap.English,
		FileArabic:       snap.Arabic,
		FileDescriptions: snap.Descriptions,
	}
	for name, table := range texts {
		data, err := encodeTable(table)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", name, err)
		}
		out[name] = data
	}
	data, err := encodeTable(snap.Verified)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileVerified, err)
	}
	out[FileVerified] = data
	return out, nil
}

func encodeTable[V any](t *dictionary.Table[V]) ([]byte, error) {
	buf := []byte("{}")
	var err error
	t.Each(func(key string, v V) {
		if err != nil {
			return
		}
		buf, err = sjson.SetBytes(buf, EscapeKey(key), v)
	})
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(buf, prettyOptions), nil
}

// EscapeKey escapes the path syntax characters in an object key so it can
// be used as a single gjson or sjson path component. A leading ':' would
// otherwise make sjson treat a numeric key like ":1" as "1".
func EscapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', ':', '!', '=', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
