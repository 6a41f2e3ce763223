package dictionary

import "strconv"

// Table is a string-keyed map that remembers insertion order. Stored
// dictionary files are JSON objects whose key order is the row order.
type Table[V any] struct {
	keys   []string
	values map[string]V
}

// NewTable returns an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{values: make(map[string]V)}
}

// Set stores v under key, appending key if it is new.
func (t *Table[V]) Set(key string, v V) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Get returns the value stored under key.
func (t *Table[V]) Get(key string) (V, bool) {
	if t == nil {
		var zero V
		return zero, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (t *Table[V]) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Each calls fn for every entry in order.
func (t *Table[V]) Each(fn func(key string, v V)) {
	for _, k := range t.Keys() {
		fn(k, t.values[k])
	}
}

// Snapshot is the persisted form of the dictionary: one table per file.
type Snapshot struct {
	Korean       *Table[string]
	English      *Table[string]
	Arabic       *Table[string]
	Descriptions *Table[string]
	Verified     *Table[bool]
}

// NewSnapshot returns a snapshot with empty tables.
func NewSnapshot() Snapshot {
	return Snapshot{
		Korean:       NewTable[string](),
		English:      NewTable[string](),
		Arabic:       NewTable[string](),
		Descriptions: NewTable[string](),
		Verified:     NewTable[bool](),
	}
}

// Table returns the text table for lang.
func (s Snapshot) Table(lang Lang) *Table[string] {
	switch lang {
	case Korean:
		return s.Korean
	case English:
		return s.English
	case Arabic:
		return s.Arabic
	}
	return nil
}

// FromSnapshot rebuilds the row sequence. Rows follow the key order of the
// Korean table, followed by keys present only in the English table. An
// empty snapshot yields a single blank row.
func FromSnapshot(snap Snapshot) Sequence {
	var seq Sequence
	seen := make(map[string]bool)

	add := func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		r := NewRow()
		r.Key = key
		r.Korean, _ = snap.Korean.Get(key)
		r.Description, _ = snap.Descriptions.Get(key)
		r.English, _ = snap.English.Get(key)
		r.Arabic, _ = snap.Arabic.Get(key)
		r.Verified, _ = snap.Verified.Get(key)
		seq = append(seq, r)
	}

	for _, k := range snap.Korean.Keys() {
		add(k)
	}
	for _, k := range snap.English.Keys() {
		add(k)
	}

	if len(seq) == 0 {
		return Blank()
	}
	return seq
}

// Snapshot converts the sequence to its persisted form. Blank rows are
// dropped. A storage key that is already taken gets a numeric suffix so
// no row overwrites another. Every stored row gets a verification entry.
func (s Sequence) Snapshot() Snapshot {
	snap := NewSnapshot()
	for _, r := range s {
		if r.IsBlank() {
			continue
		}
		key := r.StorageKey()
		if _, taken := snap.Korean.Get(key); taken {
			for n := 2; ; n++ {
				candidate := key + "_" + strconv.Itoa(n)
				if _, taken := snap.Korean.Get(candidate); !taken {
					key = candidate
					break
				}
			}
		}
		snap.Korean.Set(key, r.Korean)
		snap.English.Set(key, r.English)
		snap.Arabic.Set(key, r.Arabic)
		snap.Descriptions.Set(key, r.Description)
		snap.Verified.Set(key, r.Verified)
	}
	return snap
}
