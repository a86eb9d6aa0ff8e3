// Package setval is the tagged container over the two set encodings:
// a compact, integer-only IntSet and a general FlatSet. Dispatch happens
// through methods on SetValue rather than through casts, so callers never
// need to know which representation is active except when they want to
// (e.g. reporting encoding in an INFO-style command).
package setval

import (
	"strconv"

	"github.com/mwinuka/setshard/internal/setenc/flatset"
	"github.com/mwinuka/setshard/internal/setenc/intset"
)

type Encoding int

const (
	EncodingIntSet Encoding = iota
	EncodingFlatSet
)

func (e Encoding) String() string {
	if e == EncodingIntSet {
		return "intset"
	}
	return "flatset"
}

// SetValue is exactly one of {IntSet, FlatSet} at any moment. Once a value
// upgrades to FlatSet it never downgrades for the rest of its lifetime
// (spec invariant 5).
type SetValue struct {
	Encoding Encoding
	Ints     *intset.IntSet
	Flat     *flatset.FlatSet
}

func NewIntSet() *SetValue {
	return &SetValue{Encoding: EncodingIntSet, Ints: intset.New()}
}

func NewFlatSet() *SetValue {
	return &SetValue{Encoding: EncodingFlatSet, Flat: flatset.New()}
}

func (s *SetValue) Size() int {
	switch s.Encoding {
	case EncodingIntSet:
		return s.Ints.Len()
	case EncodingFlatSet:
		return s.Flat.Len()
	}
	return 0
}

// IsMember reports whether v belongs to the set. For an IntSet, v that
// fails to parse as a canonical integer is never a member, regardless of
// what it looks like as a string.
func (s *SetValue) IsMember(v string) bool {
	switch s.Encoding {
	case EncodingIntSet:
		n, ok := ParseCanonicalInt(v)
		if !ok {
			return false
		}
		return s.Ints.Contains(n)
	case EncodingFlatSet:
		return s.Flat.Contains(v)
	}
	return false
}

// Members returns the set's members in the encoding's own iteration order:
// ascending numerical order for IntSet, unspecified-but-stable order for
// FlatSet.
func (s *SetValue) Members() []string {
	switch s.Encoding {
	case EncodingIntSet:
		out := make([]string, 0, s.Ints.Len())
		s.Ints.ForEach(func(v int64) {
			out = append(out, strconv.FormatInt(v, 10))
		})
		return out
	case EncodingFlatSet:
		return s.Flat.Members()
	}
	return nil
}

// UpgradeToFlat converts an IntSet-encoded value to FlatSet in place,
// copying every existing member over as its canonical decimal string.
// It is a no-op if the value is already FlatSet. Irreversible: invariant 5.
func (s *SetValue) UpgradeToFlat() {
	if s.Encoding == EncodingFlatSet {
		return
	}
	fs := flatset.New()
	s.Ints.ForEach(func(v int64) {
		fs.Add(strconv.FormatInt(v, 10))
	})
	s.Encoding = EncodingFlatSet
	s.Flat = fs
	s.Ints = nil
}

// ParseCanonicalInt accepts exactly the canonical decimal encoding the
// store uses for IntSet membership: an optional leading '-', no leading
// zeros, no leading '+', and no surrounding whitespace. This is invariant
// 2's "canonical decimal representation... parseable by the store's
// integer parser".
func ParseCanonicalInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if strconv.FormatInt(n, 10) != s {
		return 0, false
	}
	return n, true
}
