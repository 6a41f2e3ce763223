package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dshills/trilex/internal/dictionary"
)

const sheetName = "dictionary"

// ErrNoKoreanColumn is returned when an imported sheet has no korean column.
var ErrNoKoreanColumn = errors.New("sheet has no korean column")

// xlsxColumns are the spreadsheet columns in order.
var xlsxColumns = []string{"key", "korean", "description", "english", "arabic", "verified"}

// WriteXLSX writes every row as a spreadsheet.
func WriteXLSX(w io.Writer, seq dictionary.Sequence) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	header := make([]any, len(xlsxColumns))
	for i, c := range xlsxColumns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	n := 0
	for _, r := range seq {
		if r.IsBlank() {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		row := []any{r.Key, r.Korean, r.Description, r.English, r.Arabic, r.Verified}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
		n++
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

// ReadXLSX reads rows from the first sheet. Columns are matched by their
// header, case-insensitively, so they may appear in any order; unknown
// columns are ignored. Empty lines are skipped.
func ReadXLSX(r io.Reader) (dictionary.Sequence, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoKoreanColumn
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoKoreanColumn
	}

	col := make(map[string]int)
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["korean"]; !ok {
		return nil, ErrNoKoreanColumn
	}
	get := func(line []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(line) {
			return ""
		}
		return line[i]
	}

	var seq dictionary.Sequence
	for _, line := range rows[1:] {
		row := dictionary.NewRow().
			With(dictionary.FieldKey, get(line, "key")).
			With(dictionary.FieldKorean, get(line, "korean")).
			With(dictionary.FieldDescription, get(line, "description")).
			With(dictionary.FieldEnglish, get(line, "english")).
			With(dictionary.FieldArabic, get(line, "arabic"))
		row.Verified = parseBool(get(line, "verified"))
		if row.IsBlank() {
			continue
		}
		seq = append(seq, row)
	}
	return seq, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "o", "✓":
		return true
	}
	return false
}

// Merge applies imported rows to seq. A row whose key matches an
// existing unverified row updates its non-empty fields; verified rows are
// left alone; rows with new or empty keys are appended. Order of existing
// rows is kept.
func Merge(seq, imported dictionary.Sequence) (dictionary.Sequence, int, int) {
	byKey := make(map[string]int, len(seq))
	for i, r := range seq {
		if r.Key != "" {
			byKey[r.Key] = i
		}
	}
	out := slices.Clone(seq)
	if len(out) == 1 && out[0].IsBlank() {
		out = nil
	}

	updated, added := 0, 0
	for _, in := range imported {
		i, ok := byKey[in.Key]
		if !ok || in.Key == "" {
			out = append(out, in)
			added++
			continue
		}
		if out[i].Verified {
			continue
		}
		changed := false
		for _, f := range dictionary.Fields {
			if v := in.Get(f); v != "" && v != out[i].Get(f) {
				var err error
				if out, err = out.Update(i, f, v); err == nil {
					changed = true
				}
			}
		}
		if in.Verified {
			out, _ = out.SetVerified(i, true)
			changed = true
		}
		if changed {
			updated++
		}
	}
	return out, updated, added
}
