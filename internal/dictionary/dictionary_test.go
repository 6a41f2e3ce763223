package dictionary

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func seq(keys ...string) Sequence {
	s := make(Sequence, len(keys))
	for i, k := range keys {
		s[i] = NewRow().With(FieldKey, k).With(FieldKorean, "ko_"+k)
	}
	return s
}

func keys(s Sequence) []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Key
	}
	return out
}

func TestParseLang(t *testing.T) {
	for _, in := range []string{"ko", "EN", " ar "} {
		if _, err := ParseLang(in); err != nil {
			t.Errorf("ParseLang(%q): %v", in, err)
		}
	}
	if _, err := ParseLang("fr"); !errors.Is(err, ErrUnknownLang) {
		t.Errorf("ParseLang(fr) err = %v", err)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(strings.ToUpper(f.String()))
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f, got, err)
		}
	}
	if _, err := ParseField("french"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("ParseField(french) err = %v", err)
	}
}

func TestRowWithNormalizes(t *testing.T) {
	// "한" as conjoining jamo.
	decomposed := "\u1112\u1161\u11ab"
	r := NewRow().With(FieldKorean, "  "+decomposed+" ")
	if r.Korean != "한" {
		t.Errorf("Korean = %q, want composed 한", r.Korean)
	}
	if r.Get(FieldKorean) != "한" {
		t.Error("Get did not return the field")
	}
}

func TestNewRowHasIdentity(t *testing.T) {
	a, b := NewRow(), NewRow()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids %q and %q should be unique", a.ID, b.ID)
	}
	if !a.IsBlank() {
		t.Error("new row should be blank")
	}
}

func TestStorageKey(t *testing.T) {
	r := Row{ID: "0f8fad5b-d9cb-469f-a165-70867728950e"}
	if got := r.StorageKey(); got != "key_0f8fad5b" {
		t.Errorf("StorageKey = %q", got)
	}
	r.Key = "hello"
	if got := r.StorageKey(); got != "hello" {
		t.Errorf("StorageKey = %q, want hello", got)
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	s := seq("a", "b")
	out := s.Append()
	if len(out) != 3 || len(s) != 2 {
		t.Fatalf("len out=%d s=%d", len(out), len(s))
	}
	if !out[2].IsBlank() {
		t.Error("appended row is not blank")
	}
}

func TestDelete(t *testing.T) {
	s := seq("a", "b", "c")
	out, err := s.Delete(1)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(keys(out), []string{"a", "c"}) {
		t.Errorf("keys = %v", keys(out))
	}
	if !slices.Equal(keys(s), []string{"a", "b", "c"}) {
		t.Error("receiver modified")
	}
}

func TestDeleteRefused(t *testing.T) {
	s := seq("a", "b")
	s, _ = s.SetVerified(0, true)

	if _, err := s.Delete(0); !errors.Is(err, ErrVerified) {
		t.Errorf("delete verified err = %v", err)
	}
	if _, err := seq("a").Delete(0); !errors.Is(err, ErrLastRow) {
		t.Errorf("delete last err = %v", err)
	}
	if _, err := s.Delete(5); !errors.Is(err, ErrIndex) {
		t.Errorf("delete out of range err = %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := seq("a")
	out, err := s.Update(0, FieldEnglish, "Apple")
	if err != nil {
		t.Fatal(err)
	}
	if out[0].English != "Apple" || s[0].English != "" {
		t.Errorf("out=%q s=%q", out[0].English, s[0].English)
	}

	locked, _ := out.SetVerified(0, true)
	if _, err := locked.Update(0, FieldEnglish, "x"); !errors.Is(err, ErrVerified) {
		t.Errorf("update verified err = %v", err)
	}
	if _, err := locked.Translated(0, "k", "e", "a"); !errors.Is(err, ErrVerified) {
		t.Errorf("translate verified err = %v", err)
	}
}

func TestTranslatedKeepsKeyWhenEmpty(t *testing.T) {
	s := seq("apple")
	out, err := s.Translated(0, "", "Apple", "تفاحة")
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Key != "apple" || out[0].English != "Apple" || out[0].Arabic != "تفاحة" {
		t.Errorf("row = %+v", out[0])
	}
}

func TestUnverified(t *testing.T) {
	s := seq("a", "b", "c")
	s, _ = s.SetVerified(1, true)
	s = s.Append()
	if got := s.Unverified(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Unverified = %v, want [0 2]", got)
	}
}

func TestIndexOf(t *testing.T) {
	s := seq("a", "b")
	if s.IndexOf(s[1].ID) != 1 || s.IndexOf("missing") != -1 {
		t.Error("IndexOf mismatch")
	}
}

func TestLanguage(t *testing.T) {
	s := seq("b", "a").Append()
	s, _ = s.Update(0, FieldArabic, "ب")
	table := s.Language(Arabic)
	if !slices.Equal(table.Keys(), []string{"b", "a"}) {
		t.Errorf("keys = %v", table.Keys())
	}
	if v, _ := table.Get("b"); v != "ب" {
		t.Errorf("b = %q", v)
	}
}

func TestFromSnapshotOrder(t *testing.T) {
	snap := NewSnapshot()
	snap.Korean.Set("zeta", "제타")
	snap.Korean.Set("alpha", "알파")
	snap.English.Set("alpha", "Alpha")
	snap.English.Set("only_en", "Only")
	snap.English.Set("zeta", "Zeta")
	snap.Verified.Set("alpha", true)
	snap.Descriptions.Set("zeta", "그리스 문자")

	s := FromSnapshot(snap)
	if !slices.Equal(keys(s), []string{"zeta", "alpha", "only_en"}) {
		t.Fatalf("keys = %v", keys(s))
	}
	if !s[1].Verified || s[0].Verified {
		t.Error("verified flags not carried")
	}
	if s[0].Description != "그리스 문자" || s[2].Korean != "" {
		t.Errorf("rows = %+v", s)
	}
}

func TestFromSnapshotEmpty(t *testing.T) {
	s := FromSnapshot(Snapshot{})
	if len(s) != 1 || !s[0].IsBlank() {
		t.Errorf("empty snapshot = %+v, want one blank row", s)
	}
}

func TestSnapshotRoundTripKeepsOrder(t *testing.T) {
	s := seq("c", "a", "b")
	s, _ = s.SetVerified(2, true)
	s = s.Append()

	snap := s.Snapshot()
	if !slices.Equal(snap.Korean.Keys(), []string{"c", "a", "b"}) {
		t.Fatalf("ko keys = %v", snap.Korean.Keys())
	}
	if snap.Verified.Len() != 3 {
		t.Errorf("verification entries = %d, want 3", snap.Verified.Len())
	}

	back := FromSnapshot(snap)
	if !slices.Equal(keys(back), []string{"c", "a", "b"}) || !back[2].Verified {
		t.Errorf("round trip = %+v", back)
	}
}

func TestSnapshotDedupesKeys(t *testing.T) {
	s := seq("dup", "dup", "dup")
	snap := s.Snapshot()
	if !slices.Equal(snap.Korean.Keys(), []string{"dup", "dup_2", "dup_3"}) {
		t.Errorf("keys = %v", snap.Korean.Keys())
	}
}
