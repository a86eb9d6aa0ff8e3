// Package setops is the shard-local operation set the transaction layer's
// callbacks invoke: OpAdd, OpRem, OpPop, OpUnion, OpDiff and OpInter. Every
// function here runs synchronously on the goroutine that owns the shard's
// dictionary and touches only the keys handed to it — no locking, no
// cross-shard reach.
package setops

import (
	"sort"
	"strconv"

	"github.com/mwinuka/setshard/internal/constants"
	"github.com/mwinuka/setshard/internal/dictionary"
	"github.com/mwinuka/setshard/internal/opresult"
	"github.com/mwinuka/setshard/internal/setval"
)

// asSetValue type-asserts an entry's payload, reporting WrongType when the
// key holds something other than a set.
func asSetValue(e *dictionary.Entry) (*setval.SetValue, bool) {
	sv, ok := e.Value.(*setval.SetValue)
	return sv, ok
}

// OpAdd implements SADD. With overwrite set (the STORE variants' write
// hop), whatever the key held is replaced by a fresh set built from vals,
// and an empty vals deletes the key.
func OpAdd(dict *dictionary.Dictionary, key string, vals []string, overwrite bool, maxIntsetEntries int) opresult.Result {
	if overwrite && len(vals) == 0 {
		dict.Del(key)
		return opresult.Result{Status: opresult.OK, Count: 0}
	}

	// Invariant 2's 65536 ceiling holds regardless of configuration, so it's
	// enforced here rather than trusted to whatever validated (or didn't
	// validate) the Config this maxIntsetEntries came from.
	if maxIntsetEntries <= 0 || maxIntsetEntries > constants.MaxIntsetEntriesHardCap {
		maxIntsetEntries = constants.MaxIntsetEntriesHardCap
	}

	entry, created := dict.FindOrCreate(key)
	if !created {
		dict.PreUpdate(entry)
	}

	if created || overwrite {
		entry.Value = initialSetValue(vals)
	} else if _, ok := asSetValue(entry); !ok {
		return opresult.Result{Status: opresult.WrongType}
	}

	sv := entry.Value.(*setval.SetValue)
	added := 0
	for _, v := range vals {
		if insertOne(sv, v, maxIntsetEntries) {
			added++
		}
	}

	dict.PostUpdate(entry)
	return opresult.Result{Status: opresult.OK, Count: added}
}

// initialSetValue picks IntSet iff every value parses as a canonical
// integer, per invariant 2's creation rule.
func initialSetValue(vals []string) *setval.SetValue {
	for _, v := range vals {
		if _, ok := setval.ParseCanonicalInt(v); !ok {
			return setval.NewFlatSet()
		}
	}
	return setval.NewIntSet()
}

// insertOne adds v to sv, upgrading IntSet to FlatSet mid-loop if v can't
// be stored as an integer or would push the set past maxIntsetEntries.
func insertOne(sv *setval.SetValue, v string, maxIntsetEntries int) bool {
	if sv.Encoding == setval.EncodingIntSet {
		n, ok := setval.ParseCanonicalInt(v)
		if ok {
			success, added := sv.Ints.AddSafe(n, maxIntsetEntries)
			if success {
				return added
			}
		}
		sv.UpgradeToFlat()
	}
	return sv.Flat.Add(v)
}

// OpRem implements SREM.
func OpRem(dict *dictionary.Dictionary, key string, vals []string) opresult.Result {
	entry, ok := dict.Find(key)
	if !ok {
		return opresult.Result{Status: opresult.KeyNotFound}
	}
	sv, ok := asSetValue(entry)
	if !ok {
		return opresult.Result{Status: opresult.WrongType}
	}

	dict.PreUpdate(entry)
	removed := 0
	for _, v := range vals {
		if sv.Encoding == setval.EncodingIntSet {
			n, ok := setval.ParseCanonicalInt(v)
			if !ok {
				continue
			}
			if sv.Ints.Remove(n) {
				removed++
			}
		} else {
			if sv.Flat.Remove(v) {
				removed++
			}
		}
	}

	if sv.Size() == 0 {
		dict.Del(key)
	} else {
		dict.PostUpdate(entry)
	}
	return opresult.Result{Status: opresult.OK, Count: removed}
}

// OpPop implements SPOP. Selection is not randomized: IntSet pops from the
// tail (largest values), FlatSet pops from begin() — spec §9's documented
// simplification.
func OpPop(dict *dictionary.Dictionary, key string, count int) opresult.Result {
	entry, ok := dict.Find(key)
	if !ok {
		return opresult.Result{Status: opresult.KeyNotFound}
	}
	sv, ok := asSetValue(entry)
	if !ok {
		return opresult.Result{Status: opresult.WrongType}
	}
	if count == 0 {
		return opresult.Result{Status: opresult.OK, Members: []string{}}
	}

	dict.PreUpdate(entry)
	size := sv.Size()
	if count >= size {
		members := sv.Members()
		dict.Del(key)
		return opresult.Result{Status: opresult.OK, Members: members}
	}

	var popped []string
	if sv.Encoding == setval.EncodingIntSet {
		popped = popIntsetTail(sv, count)
	} else {
		popped = popFlatHead(sv, count)
	}
	dict.PostUpdate(entry)
	return opresult.Result{Status: opresult.OK, Members: popped}
}

func popIntsetTail(sv *setval.SetValue, count int) []string {
	n := sv.Ints.Len()
	popped := make([]string, 0, count)
	for i := n - count; i < n; i++ {
		popped = append(popped, strconv.FormatInt(sv.Ints.Get(i), 10))
	}
	sv.Ints.TrimTail(count)
	return popped
}

func popFlatHead(sv *setval.SetValue, count int) []string {
	popped := make([]string, 0, count)
	for i := 0; i < count; i++ {
		v, ok := sv.Flat.EraseFirst()
		if !ok {
			break
		}
		popped = append(popped, v)
	}
	return popped
}

// OpUnion implements the shard-local half of SUNION/SUNIONSTORE: the
// members of every key on this shard's routed slice, deduplicated. Wrong
// type on any key aborts; a missing key contributes nothing.
func OpUnion(dict *dictionary.Dictionary, keys []string) opresult.Result {
	seen := make(map[string]struct{})
	var order []string
	for _, key := range keys {
		entry, ok := dict.Find(key)
		if !ok {
			continue
		}
		sv, ok := asSetValue(entry)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		for _, m := range sv.Members() {
			if _, dup := seen[m]; !dup {
				seen[m] = struct{}{}
				order = append(order, m)
			}
		}
	}
	if order == nil {
		order = []string{}
	}
	return opresult.Result{Status: opresult.OK, Members: order}
}

// OpDiff implements the shard-local half of SDIFF/SDIFFSTORE. keys[0] is
// the source; every other key on this shard is subtracted from it. Other
// shards' contributions to the subtrahend are folded in later by the
// combiner via OpUnion.
func OpDiff(dict *dictionary.Dictionary, keys []string) opresult.Result {
	if len(keys) == 0 {
		return opresult.Result{Status: opresult.OK, Members: []string{}}
	}
	source := keys[0]
	entry, ok := dict.Find(source)
	if !ok {
		return opresult.Result{Status: opresult.KeyNotFound}
	}
	sv, ok := asSetValue(entry)
	if !ok {
		return opresult.Result{Status: opresult.WrongType}
	}

	remaining := make(map[string]struct{})
	var order []string
	for _, m := range sv.Members() {
		remaining[m] = struct{}{}
		order = append(order, m)
	}

	for _, key := range keys[1:] {
		other, ok := dict.Find(key)
		if !ok {
			continue
		}
		osv, ok := asSetValue(other)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		for _, m := range osv.Members() {
			delete(remaining, m)
		}
	}

	out := order[:0]
	for _, m := range order {
		if _, ok := remaining[m]; ok {
			out = append(out, m)
		}
	}
	if out == nil {
		out = []string{}
	}
	return opresult.Result{Status: opresult.OK, Members: out}
}

// OpInter implements the shard-local half of SINTER/SINTERSTORE:
// intersection of every key routed to this shard. removeFirst drops the
// leading argument, used when SINTERSTORE's destination key colocates with
// source keys on this shard. Keys are probed smallest-cardinality-first.
func OpInter(dict *dictionary.Dictionary, keys []string, removeFirst bool) opresult.Result {
	if removeFirst && len(keys) > 0 {
		keys = keys[1:]
	}
	if len(keys) == 0 {
		// Only the destination key routed here (removeFirst dropped it):
		// this shard holds no intersection source and must not be treated
		// as an empty-result contributor by the combiner.
		return opresult.Result{Status: opresult.Skipped}
	}

	values := make([]*setval.SetValue, 0, len(keys))
	for _, key := range keys {
		entry, ok := dict.Find(key)
		if !ok {
			return opresult.Result{Status: opresult.KeyNotFound}
		}
		sv, ok := asSetValue(entry)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		values = append(values, sv)
	}

	if len(values) == 1 {
		return opresult.Result{Status: opresult.OK, Members: values[0].Members()}
	}

	sort.Slice(values, func(i, j int) bool { return values[i].Size() < values[j].Size() })

	candidates := values[0].Members()
	rest := values[1:]
	out := make([]string, 0, len(candidates))
	for _, m := range candidates {
		inAll := true
		for _, sv := range rest {
			if !sv.IsMember(m) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, m)
		}
	}
	return opresult.Result{Status: opresult.OK, Members: out}
}
