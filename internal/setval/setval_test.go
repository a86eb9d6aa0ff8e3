package setval_test

import (
	"sort"
	"testing"

	"github.com/mwinuka/setshard/internal/setval"
)

func Test_ParseCanonicalIntRejectsNonCanonicalForms(t *testing.T) {
	cases := map[string]bool{
		"0":    true,
		"-1":   true,
		"42":   true,
		"01":   false,
		"+1":   false,
		"-0":   false,
		" 1":   false,
		"1 ":   false,
		"1.0":  false,
		"":     false,
		"abcd": false,
	}
	for in, want := range cases {
		_, ok := setval.ParseCanonicalInt(in)
		if ok != want {
			t.Errorf("ParseCanonicalInt(%q): want ok=%v, got %v", in, want, ok)
		}
	}
}

func Test_NewIntSetMembersAscending(t *testing.T) {
	sv := setval.NewIntSet()
	sv.Ints.Add(3)
	sv.Ints.Add(1)
	sv.Ints.Add(2)
	got := sv.Members()
	want := []string{"1", "2", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func Test_IsMemberOnIntSetRejectsNonInteger(t *testing.T) {
	sv := setval.NewIntSet()
	sv.Ints.Add(7)
	if sv.IsMember("hello") {
		t.Fatal("non-integer string must never be a member of an IntSet-encoded value")
	}
	if !sv.IsMember("7") {
		t.Fatal("expected 7 to be a member")
	}
}

func Test_UpgradeToFlatPreservesMembersAndIsIrreversible(t *testing.T) {
	sv := setval.NewIntSet()
	sv.Ints.Add(1)
	sv.Ints.Add(2)
	sv.UpgradeToFlat()

	if sv.Encoding != setval.EncodingFlatSet {
		t.Fatal("expected encoding to become FlatSet")
	}
	got := sv.Members()
	sort.Strings(got)
	want := []string{"1", "2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: want %s, got %s", i, want[i], got[i])
		}
	}

	// Upgrading an already-flat value must be a no-op, not a panic.
	sv.UpgradeToFlat()
	if sv.Encoding != setval.EncodingFlatSet {
		t.Fatal("re-upgrading should be a no-op")
	}
}
