// Package mover implements SMOVE's two-hop "find then mutate" protocol.
// src and dest may land on the same shard or different shards; the find
// hop records what each shard sees, a decision is made on the caller's
// thread between hops, and the mutate hop — always scheduled, even when it
// does nothing — performs the move or its no-op.
package mover

import (
	"github.com/mwinuka/setshard/internal/dictionary"
	"github.com/mwinuka/setshard/internal/opresult"
	"github.com/mwinuka/setshard/internal/setops"
	"github.com/mwinuka/setshard/internal/setval"
)

// FindOutcome is what the find hop learns about one of the two keys
// (src or dest) on the shard that routed it.
type FindOutcome struct {
	Exists    bool
	WrongType bool
	// HasMember is only meaningful for src: whether member is currently in it.
	HasMember bool
}

// FindPair carries both outcomes through a single transaction hop's
// per-shard Result.Extra field; a shard implicated by only one of
// {src, dest} leaves the other slot nil.
type FindPair struct {
	Src  *FindOutcome
	Dest *FindOutcome
}

// Find runs on a shard for whichever of {src, dest} routed there. Both may
// be present when src == dest (co-located), in which case both outcomes
// are derived from the same lookup.
func Find(dict *dictionary.Dictionary, args []string, src, dest, member string) (srcOut, destOut *FindOutcome) {
	for _, key := range args {
		switch key {
		case src:
			srcOut = findOne(dict, key, member)
			if key == dest {
				destOut = srcOut
			}
		case dest:
			destOut = findOne(dict, key, "")
		}
	}
	return srcOut, destOut
}

func findOne(dict *dictionary.Dictionary, key, member string) *FindOutcome {
	entry, ok := dict.Find(key)
	if !ok {
		return &FindOutcome{Exists: false}
	}
	sv, ok := entry.Value.(*setval.SetValue)
	if !ok {
		return &FindOutcome{Exists: true, WrongType: true}
	}
	out := &FindOutcome{Exists: true}
	if member != "" {
		out.HasMember = sv.IsMember(member)
	}
	return out
}

// Decision is what Decide computes between the find and mutate hops.
type Decision struct {
	Result  opresult.Result
	Move    bool // whether the mutate hop should actually move member
	SameKey bool // src == dest: mutate hop is a no-op even when Move would be true
}

// Decide runs on the caller's thread, after both find outcomes (possibly
// nil if a key never routed anywhere, which cannot happen for a
// well-formed SMOVE but is handled defensively) are known.
func Decide(srcOut, destOut *FindOutcome, sameKey bool) Decision {
	if (srcOut != nil && srcOut.WrongType) || (destOut != nil && destOut.WrongType) {
		return Decision{Result: opresult.Result{Status: opresult.WrongType}}
	}
	if srcOut == nil || !srcOut.HasMember {
		return Decision{Result: opresult.Result{Status: opresult.OK, Bool: false}}
	}
	if sameKey {
		return Decision{Result: opresult.Result{Status: opresult.OK, Bool: true}, SameKey: true}
	}
	return Decision{Result: opresult.Result{Status: opresult.OK, Bool: true}, Move: true}
}

// Mutate runs the concluding hop's shard-local effect: on the shard
// holding src, remove member; on the shard holding dest, add it, subject
// to the same encoding-upgrade policy as SADD. A no-op decision still gets
// called (with Move=false) so the transaction still schedules a
// concluding hop, per the "no-op on error paths" rule.
func Mutate(dict *dictionary.Dictionary, args []string, decision Decision, src, dest, member string, maxIntsetEntries int) opresult.Result {
	if !decision.Move {
		return opresult.Result{Status: opresult.Skipped}
	}
	for _, key := range args {
		switch key {
		case src:
			setops.OpRem(dict, key, []string{member})
		case dest:
			setops.OpAdd(dict, key, []string{member}, false, maxIntsetEntries)
		}
	}
	return opresult.Result{Status: opresult.OK}
}
