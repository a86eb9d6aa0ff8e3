// Package combine reduces the per-shard result vector a transaction
// produces (indexed by shard_id, SKIPPED where a shard contributed
// nothing) into the single reply SUNION, SINTER and SDIFF hand back to
// the client.
package combine

import "github.com/mwinuka/setshard/internal/opresult"

// Union flattens every non-SKIPPED shard's members into one deduplicated
// set. KEY_NOTFOUND contributes nothing; WRONG_TYPE anywhere aborts the
// whole combine.
func Union(results []opresult.Result) opresult.Result {
	seen := make(map[string]struct{})
	var order []string
	for _, r := range results {
		switch r.Status {
		case opresult.Skipped, opresult.KeyNotFound:
			continue
		case opresult.WrongType:
			return opresult.Result{Status: opresult.WrongType}
		case opresult.OK:
			for _, m := range r.Members {
				if _, dup := seen[m]; !dup {
					seen[m] = struct{}{}
					order = append(order, m)
				}
			}
		}
	}
	if order == nil {
		order = []string{}
	}
	return opresult.Result{Status: opresult.OK, Members: order}
}

// Diff combines SDIFF's per-shard results. sourceShardID identifies which
// shard ran OpDiff (the shard holding the first argument); it already
// subtracted any co-located non-source keys. Every other shard ran
// OpUnion; Diff subtracts those unions from the source shard's starting
// set.
func Diff(results []opresult.Result, sourceShardID int) opresult.Result {
	source := results[sourceShardID]
	switch source.Status {
	case opresult.WrongType:
		return opresult.Result{Status: opresult.WrongType}
	case opresult.KeyNotFound:
		return opresult.Result{Status: opresult.OK, Members: []string{}}
	}

	remaining := make(map[string]struct{}, len(source.Members))
	order := make([]string, len(source.Members))
	copy(order, source.Members)
	for _, m := range order {
		remaining[m] = struct{}{}
	}

	for i, r := range results {
		if i == sourceShardID {
			continue
		}
		switch r.Status {
		case opresult.WrongType:
			return opresult.Result{Status: opresult.WrongType}
		case opresult.Skipped, opresult.KeyNotFound:
			continue
		case opresult.OK:
			for _, m := range r.Members {
				delete(remaining, m)
			}
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

// Inter combines SINTER's per-shard results. Each shard already reduced
// its local keys to their intersection; Inter counts, for each candidate
// member of the first non-SKIPPED shard, how many subsequent contributing
// shards also carry it, keeping only members present in every one.
// KEY_NOTFOUND on any shard means the overall intersection is empty:
// something the caller asked to intersect doesn't exist anywhere.
func Inter(results []opresult.Result) opresult.Result {
	var contributing []opresult.Result
	for _, r := range results {
		if r.Status == opresult.Skipped {
			continue
		}
		if r.Status == opresult.WrongType {
			return opresult.Result{Status: opresult.WrongType}
		}
		if r.Status == opresult.KeyNotFound {
			return opresult.Result{Status: opresult.OK, Members: []string{}}
		}
		contributing = append(contributing, r)
	}
	if len(contributing) == 0 {
		return opresult.Result{Status: opresult.OK, Members: []string{}}
	}

	candidates := contributing[0].Members
	rest := contributing[1:]
	out := make([]string, 0, len(candidates))
	for _, m := range candidates {
		present := true
		for _, r := range rest {
			if !containsMember(r.Members, m) {
				present = false
				break
			}
		}
		if present {
			out = append(out, m)
		}
	}
	return opresult.Result{Status: opresult.OK, Members: out}
}

func containsMember(members []string, target string) bool {
	for _, m := range members {
		if m == target {
			return true
		}
	}
	return false
}
