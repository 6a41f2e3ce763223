package dictionary

import (
	"fmt"
	"slices"
)

// Sequence is the ordered list of rows. Order is display and storage order.
type Sequence []Row

// Blank returns a sequence holding one empty row, which is what the editor
// shows for an empty dictionary.
func Blank() Sequence {
	return Sequence{NewRow()}
}

// Len returns the number of rows.
func (s Sequence) Len() int {
	return len(s)
}

// At returns row i.
func (s Sequence) At(i int) (Row, error) {
	if i < 0 || i >= len(s) {
		return Row{}, fmt.Errorf("%w: %d", ErrIndex, i)
	}
	return s[i], nil
}

// IndexOf returns the position of the row with the given identity, or -1.
func (s Sequence) IndexOf(id string) int {
	return slices.IndexFunc(s, func(r Row) bool { return r.ID == id })
}

// Append returns s with an empty row added at the end.
func (s Sequence) Append() Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, NewRow())
}

// Delete returns s without row i. Verified rows and the last remaining
// row cannot be deleted.
func (s Sequence) Delete(i int) (Sequence, error) {
	r, err := s.At(i)
	if err != nil {
		return s, err
	}
	if r.Verified {
		return s, fmt.Errorf("delete row %d: %w", i, ErrVerified)
	}
	if len(s) <= 1 {
		return s, ErrLastRow
	}
	out := make(Sequence, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), nil
}

// Update returns s with field f of row i set to value.
func (s Sequence) Update(i int, f Field, value string) (Sequence, error) {
	r, err := s.At(i)
	if err != nil {
		return s, err
	}
	if r.Verified {
		return s, fmt.Errorf("edit %s of row %d: %w", f, i, ErrVerified)
	}
	return s.set(i, r.With(f, value)), nil
}

// Translated returns s with the translated fields of row i filled in.
// An empty key leaves the row's key alone.
func (s Sequence) Translated(i int, key, english, arabic string) (Sequence, error) {
	r, err := s.At(i)
	if err != nil {
		return s, err
	}
	if r.Verified {
		return s, fmt.Errorf("translate row %d: %w", i, ErrVerified)
	}
	if key != "" {
		r = r.With(FieldKey, key)
	}
	r = r.With(FieldEnglish, english).With(FieldArabic, arabic)
	return s.set(i, r), nil
}

// SetVerified returns s with the verified flag of row i set.
func (s Sequence) SetVerified(i int, verified bool) (Sequence, error) {
	r, err := s.At(i)
	if err != nil {
		return s, err
	}
	if r.Verified == verified {
		return s, nil
	}
	r.Verified = verified
	return s.set(i, r), nil
}

// Unverified returns the indices of rows that may still be translated.
func (s Sequence) Unverified() []int {
	var out []int
	for i, r := range s {
		if !r.Verified && r.Korean != "" {
			out = append(out, i)
		}
	}
	return out
}

// Language returns the export table for lang: storage key to text, in row
// order. Rows without an English key are skipped.
func (s Sequence) Language(lang Lang) *Table[string] {
	t := NewTable[string]()
	for _, r := range s {
		if r.Key == "" {
			continue
		}
		t.Set(r.Key, r.Text(lang))
	}
	return t
}

func (s Sequence) set(i int, r Row) Sequence {
	out := slices.Clone(s)
	out[i] = r
	return out
}
