package intset_test

import (
	"testing"

	"github.com/mwinuka/setshard/internal/setenc/intset"
)

func Test_AddKeepsAscendingOrder(t *testing.T) {
	s := intset.New()
	for _, v := range []int64{30, 10, 20, 10} {
		s.Add(v)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 distinct members, got %d", s.Len())
	}
	want := []int64{10, 20, 30}
	for i, w := range want {
		if got := s.Get(i); got != w {
			t.Errorf("index %d: want %d, got %d", i, w, got)
		}
	}
}

func Test_ContainsAndRemove(t *testing.T) {
	s := intset.New()
	s.Add(5)
	if !s.Contains(5) {
		t.Fatal("expected 5 to be a member")
	}
	if !s.Remove(5) {
		t.Fatal("expected Remove to report success")
	}
	if s.Contains(5) {
		t.Fatal("5 should no longer be a member")
	}
	if s.Remove(5) {
		t.Fatal("second Remove of the same value should report false")
	}
}

func Test_AddSafeRefusesPastLimit(t *testing.T) {
	s := intset.New()
	for i := int64(0); i < 4; i++ {
		ok, added := s.AddSafe(i, 4)
		if !ok || !added {
			t.Fatalf("expected value %d to be added within limit", i)
		}
	}
	ok, added := s.AddSafe(99, 4)
	if ok || added {
		t.Fatal("expected AddSafe to refuse growth past maxEntries")
	}
	// Already-present values are always safe, even at the cap.
	ok, added = s.AddSafe(0, 4)
	if !ok || added {
		t.Fatal("expected AddSafe on an existing member to report ok=true, added=false")
	}
}

func Test_TrimTail(t *testing.T) {
	s := intset.New()
	for _, v := range []int64{1, 2, 3, 4, 5} {
		s.Add(v)
	}
	s.TrimTail(2)
	if s.Len() != 3 {
		t.Fatalf("expected 3 members after trimming 2, got %d", s.Len())
	}
	if s.Contains(4) || s.Contains(5) {
		t.Fatal("trimmed members should be gone")
	}
}

func Test_WidthWidensWithMagnitude(t *testing.T) {
	s := intset.New()
	if s.Width() != intset.Width16 {
		t.Fatalf("expected initial width 16, got %v", s.Width())
	}
	s.Add(40000)
	if s.Width() != intset.Width32 {
		t.Fatalf("expected width to widen to 32, got %v", s.Width())
	}
	s.Add(1 << 40)
	if s.Width() != intset.Width64 {
		t.Fatalf("expected width to widen to 64, got %v", s.Width())
	}
}

func Test_ForEachYieldsAscending(t *testing.T) {
	s := intset.New()
	for _, v := range []int64{7, -3, 2} {
		s.Add(v)
	}
	var got []int64
	s.ForEach(func(v int64) { got = append(got, v) })
	want := []int64{-3, 2, 7}
	if len(got) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: want %d, got %d", i, want[i], got[i])
		}
	}
}
