// Package intset is a sorted, distinct packed array of signed integers.
// Lookup is binary search; iteration is always in ascending numerical
// order. A width class (16/32/64 bits) is tracked alongside the backing
// slice so callers can report how narrow the encoding currently is,
// mirroring the reference implementation's storage-width widening even
// though the Go backing store itself is a plain []int64.
package intset

import "math"

type Width uint8

const (
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

type IntSet struct {
	vals  []int64
	width Width
}

func New() *IntSet {
	return &IntSet{width: Width16}
}

func (s *IntSet) Len() int {
	return len(s.vals)
}

func (s *IntSet) search(v int64) (int, bool) {
	lo, hi := 0, len(s.vals)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case s.vals[mid] == v:
			return mid, true
		case s.vals[mid] < v:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false
}

func (s *IntSet) Contains(v int64) bool {
	_, ok := s.search(v)
	return ok
}

// Add inserts v in sorted position, returning whether it was newly added.
func (s *IntSet) Add(v int64) bool {
	i, ok := s.search(v)
	if ok {
		return false
	}
	s.vals = append(s.vals, 0)
	copy(s.vals[i+1:], s.vals[i:])
	s.vals[i] = v
	s.growWidth(v)
	return true
}

// AddSafe is IntsetAddSafe from the reference design: it refuses to grow the
// set past maxEntries. ok=false means the caller must upgrade to FlatSet;
// ok=true, added=false means v was already a member.
func (s *IntSet) AddSafe(v int64, maxEntries int) (ok bool, added bool) {
	if s.Contains(v) {
		return true, false
	}
	if len(s.vals) >= maxEntries {
		return false, false
	}
	s.Add(v)
	return true, true
}

func (s *IntSet) Remove(v int64) bool {
	i, ok := s.search(v)
	if !ok {
		return false
	}
	s.vals = append(s.vals[:i], s.vals[i+1:]...)
	return true
}

// Get returns the i-th member in ascending order.
func (s *IntSet) Get(i int) int64 {
	return s.vals[i]
}

// TrimTail drops the last k members (the largest k values), used by SPOP's
// partial-pop path.
func (s *IntSet) TrimTail(k int) {
	if k >= len(s.vals) {
		s.vals = s.vals[:0]
		return
	}
	s.vals = s.vals[:len(s.vals)-k]
}

func (s *IntSet) ForEach(fn func(int64)) {
	for _, v := range s.vals {
		fn(v)
	}
}

func (s *IntSet) Width() Width {
	return s.width
}

func (s *IntSet) growWidth(v int64) {
	w := widthFor(v)
	if w > s.width {
		s.width = w
	}
}

func widthFor(v int64) Width {
	switch {
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return Width16
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return Width32
	default:
		return Width64
	}
}
