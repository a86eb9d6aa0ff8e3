// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package set

import (
	"errors"
	"sort"

	"github.com/mwinuka/setshard/internal/combine"
	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/constants"
	"github.com/mwinuka/setshard/internal/mover"
	"github.com/mwinuka/setshard/internal/opresult"
	"github.com/mwinuka/setshard/internal/setops"
	"github.com/mwinuka/setshard/internal/setval"
	"github.com/mwinuka/setshard/internal/txn"
	"github.com/mwinuka/setshard/internal/wire"
)

// sortIfScripted applies the deterministic-script-sort rule: array replies
// whose order would otherwise depend on encoding or hash seed must come
// back lexicographically sorted when the command runs inside a script.
func sortIfScripted(params command.Params, members []string) []string {
	if !params.ScriptContext {
		return members
	}
	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)
	return sorted
}

// filterOut returns args with dest removed, preserving order. Used by the
// STORE variants, whose transaction spans the destination key alongside
// the source keys so the destination write lands in the same hop
// sequence, but whose shard-local combine step must never see dest.
func filterOut(args []string, dest string) []string {
	out := args[:0:0]
	for _, a := range args {
		if a != dest {
			out = append(out, a)
		}
	}
	return out
}

func handleSADD(params command.Params) ([]byte, error) {
	keys, err := saddKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.WriteKeys[0]
	vals := params.Command[2:]

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		return setops.OpAdd(params.Coordinator.DictionaryFor(shardID), key, vals, false, params.Config.SetMaxIntsetEntries)
	})
	if res.Status == opresult.WrongType {
		return nil, errors.New(constants.WrongTypeResponse)
	}
	return wire.Integer(res.Count), nil
}

func handleSREM(params command.Params) ([]byte, error) {
	keys, err := sremKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.WriteKeys[0]
	vals := params.Command[2:]

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		return setops.OpRem(params.Coordinator.DictionaryFor(shardID), key, vals)
	})
	switch res.Status {
	case opresult.WrongType:
		return nil, errors.New(constants.WrongTypeResponse)
	case opresult.KeyNotFound:
		return wire.Integer(0), nil
	}
	return wire.Integer(res.Count), nil
}

func handleSISMEMBER(params command.Params) ([]byte, error) {
	keys, err := sismemberKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]
	member := params.Command[2]

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		dict := params.Coordinator.DictionaryFor(shardID)
		entry, ok := dict.Find(key)
		if !ok {
			return opresult.Result{Status: opresult.KeyNotFound}
		}
		sv, ok := entry.Value.(*setval.SetValue)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		return opresult.Result{Status: opresult.OK, Bool: sv.IsMember(member)}
	})
	if res.Status == opresult.WrongType {
		return nil, errors.New(constants.WrongTypeResponse)
	}
	return wire.Bool01(res.Bool), nil
}

func handleSMISMEMBER(params command.Params) ([]byte, error) {
	keys, err := smismemberKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]
	members := params.Command[2:]

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		dict := params.Coordinator.DictionaryFor(shardID)
		entry, ok := dict.Find(key)
		flags := make([]bool, len(members))
		if !ok {
			return opresult.Result{Status: opresult.OK, Extra: flags}
		}
		sv, ok := entry.Value.(*setval.SetValue)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		for i, m := range members {
			flags[i] = sv.IsMember(m)
		}
		return opresult.Result{Status: opresult.OK, Extra: flags}
	})
	if res.Status == opresult.WrongType {
		return nil, errors.New(constants.WrongTypeResponse)
	}
	flags, _ := res.Extra.([]bool)
	ints := make([]int, len(members))
	for i := range ints {
		if i < len(flags) && flags[i] {
			ints[i] = 1
		}
	}
	return wire.IntegerArray(ints), nil
}

func handleSCARD(params command.Params) ([]byte, error) {
	keys, err := scardKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		dict := params.Coordinator.DictionaryFor(shardID)
		entry, ok := dict.Find(key)
		if !ok {
			return opresult.Result{Status: opresult.KeyNotFound}
		}
		sv, ok := entry.Value.(*setval.SetValue)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		return opresult.Result{Status: opresult.OK, Count: sv.Size()}
	})
	switch res.Status {
	case opresult.WrongType:
		return nil, errors.New(constants.WrongTypeResponse)
	case opresult.KeyNotFound:
		return wire.Integer(0), nil
	}
	return wire.Integer(res.Count), nil
}

func handleSMEMBERS(params command.Params) ([]byte, error) {
	keys, err := smembersKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		dict := params.Coordinator.DictionaryFor(shardID)
		entry, ok := dict.Find(key)
		if !ok {
			return opresult.Result{Status: opresult.KeyNotFound}
		}
		sv, ok := entry.Value.(*setval.SetValue)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		return opresult.Result{Status: opresult.OK, Members: sv.Members()}
	})
	switch res.Status {
	case opresult.WrongType:
		return nil, errors.New(constants.WrongTypeResponse)
	case opresult.KeyNotFound:
		return wire.Array(nil), nil
	}
	return wire.Array(sortIfScripted(params, res.Members)), nil
}

func handleSRANDMEMBER(params command.Params) ([]byte, error) {
	keys, err := srandmemberKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]
	hasCount := len(params.Command) == 3
	count := 1
	if hasCount {
		n, ok := setval.ParseCanonicalInt(params.Command[2])
		if !ok {
			return nil, errors.New(constants.NotIntegerResponse)
		}
		count = int(n)
	}

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		dict := params.Coordinator.DictionaryFor(shardID)
		entry, ok := dict.Find(key)
		if !ok {
			return opresult.Result{Status: opresult.KeyNotFound}
		}
		sv, ok := entry.Value.(*setval.SetValue)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		return opresult.Result{Status: opresult.OK, Members: sv.Members()}
	})
	switch res.Status {
	case opresult.WrongType:
		return nil, errors.New(constants.WrongTypeResponse)
	case opresult.KeyNotFound:
		if hasCount {
			return wire.Array(nil), nil
		}
		return wire.NullBulk(), nil
	}

	picked := pickRandomMembers(res.Members, count)
	if !hasCount {
		if len(picked) == 0 {
			return wire.NullBulk(), nil
		}
		return wire.BulkString(picked[0]), nil
	}
	return wire.Array(picked), nil
}

// pickRandomMembers is not actually randomized (spec §9 documents SPOP's
// equivalent simplification and it applies here too): count >= 0 takes
// up to count distinct members in the set's own iteration order; count < 0
// repeats members cyclically to satisfy the exact requested length.
func pickRandomMembers(members []string, count int) []string {
	if len(members) == 0 {
		return nil
	}
	if count >= 0 {
		if count > len(members) {
			count = len(members)
		}
		return append([]string(nil), members[:count]...)
	}
	n := -count
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = members[i%len(members)]
	}
	return out
}

func handleSPOP(params command.Params) ([]byte, error) {
	keys, err := spopKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.WriteKeys[0]
	hasCount := len(params.Command) == 3
	count := 1
	if hasCount {
		n, ok := setval.ParseCanonicalInt(params.Command[2])
		if !ok || n < 0 {
			return nil, errors.New(constants.NotIntegerResponse)
		}
		count = int(n)
	}

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		return setops.OpPop(params.Coordinator.DictionaryFor(shardID), key, count)
	})
	switch res.Status {
	case opresult.WrongType:
		return nil, errors.New(constants.WrongTypeResponse)
	case opresult.KeyNotFound:
		if hasCount {
			return wire.Array(nil), nil
		}
		return wire.NullBulk(), nil
	}
	if hasCount {
		return wire.Array(res.Members), nil
	}
	if len(res.Members) == 0 {
		return wire.NullBulk(), nil
	}
	return wire.BulkString(res.Members[0]), nil
}

func handleSMOVE(params command.Params) ([]byte, error) {
	_, err := smoveKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	src, dest, member := params.Command[1], params.Command[2], params.Command[3]

	tr := params.Coordinator.Schedule([]string{src, dest})
	findResults := tr.Execute(func(shardID int, args []string) opresult.Result {
		srcOut, destOut := mover.Find(params.Coordinator.DictionaryFor(shardID), args, src, dest, member)
		return opresult.Result{Status: opresult.OK, Extra: mover.FindPair{Src: srcOut, Dest: destOut}}
	}, false)

	var srcOut, destOut *mover.FindOutcome
	for _, r := range findResults {
		pair, ok := r.Extra.(mover.FindPair)
		if !ok {
			continue
		}
		if pair.Src != nil {
			srcOut = pair.Src
		}
		if pair.Dest != nil {
			destOut = pair.Dest
		}
	}

	decision := mover.Decide(srcOut, destOut, src == dest)
	if decision.Result.Status == opresult.WrongType {
		tr.Execute(txn.NoOpCb, true)
		return nil, errors.New(constants.WrongTypeResponse)
	}

	tr.Execute(func(shardID int, args []string) opresult.Result {
		return mover.Mutate(params.Coordinator.DictionaryFor(shardID), args, decision, src, dest, member, params.Config.SetMaxIntsetEntries)
	}, true)

	return wire.Bool01(decision.Result.Bool), nil
}

func handleSUNION(params command.Params) ([]byte, error) {
	keys, err := sunionKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	results := params.Coordinator.ScheduleSingleHop(keys.ReadKeys, func(shardID int, args []string) opresult.Result {
		return setops.OpUnion(params.Coordinator.DictionaryFor(shardID), args)
	})
	combined := combine.Union(results)
	if combined.Status == opresult.WrongType {
		return nil, errors.New(constants.WrongTypeResponse)
	}
	return wire.Array(sortIfScripted(params, combined.Members)), nil
}

func handleSUNIONSTORE(params command.Params) ([]byte, error) {
	keys, err := sunionstoreKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	dest := keys.WriteKeys[0]
	allKeys := append([]string{dest}, keys.ReadKeys...)

	tr := params.Coordinator.Schedule(allKeys)
	results := tr.Execute(func(shardID int, args []string) opresult.Result {
		return setops.OpUnion(params.Coordinator.DictionaryFor(shardID), filterOut(args, dest))
	}, false)
	combined := combine.Union(results)
	if combined.Status == opresult.WrongType {
		tr.Execute(txn.NoOpCb, true)
		return nil, errors.New(constants.WrongTypeResponse)
	}

	destShard := params.Coordinator.Pool().ShardOf(dest)
	tr.Execute(func(shardID int, args []string) opresult.Result {
		if shardID != destShard {
			return opresult.Result{Status: opresult.Skipped}
		}
		return setops.OpAdd(params.Coordinator.DictionaryFor(shardID), dest, combined.Members, true, params.Config.SetMaxIntsetEntries)
	}, true)

	return wire.Integer(len(combined.Members)), nil
}

func handleSINTER(params command.Params) ([]byte, error) {
	keys, err := sinterKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	results := params.Coordinator.ScheduleSingleHop(keys.ReadKeys, func(shardID int, args []string) opresult.Result {
		return setops.OpInter(params.Coordinator.DictionaryFor(shardID), args, false)
	})
	combined := combine.Inter(results)
	if combined.Status == opresult.WrongType {
		return nil, errors.New(constants.WrongTypeResponse)
	}
	return wire.Array(sortIfScripted(params, combined.Members)), nil
}

func handleSINTERSTORE(params command.Params) ([]byte, error) {
	keys, err := sinterstoreKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	dest := keys.WriteKeys[0]
	allKeys := append([]string{dest}, keys.ReadKeys...)
	destShard := params.Coordinator.Pool().ShardOf(dest)

	tr := params.Coordinator.Schedule(allKeys)
	results := tr.Execute(func(shardID int, args []string) opresult.Result {
		return setops.OpInter(params.Coordinator.DictionaryFor(shardID), args, shardID == destShard)
	}, false)
	combined := combine.Inter(results)
	if combined.Status == opresult.WrongType {
		tr.Execute(txn.NoOpCb, true)
		return nil, errors.New(constants.WrongTypeResponse)
	}

	tr.Execute(func(shardID int, args []string) opresult.Result {
		if shardID != destShard {
			return opresult.Result{Status: opresult.Skipped}
		}
		return setops.OpAdd(params.Coordinator.DictionaryFor(shardID), dest, combined.Members, true, params.Config.SetMaxIntsetEntries)
	}, true)

	return wire.Integer(len(combined.Members)), nil
}

func handleSINTERCARD(params command.Params) ([]byte, error) {
	keys, err := sintercardKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	limit := -1
	tail := params.Command[2+len(keys.ReadKeys):]
	if len(tail) == 2 && tail[0] == "LIMIT" {
		n, ok := setval.ParseCanonicalInt(tail[1])
		if !ok || n < 0 {
			return nil, errors.New(constants.NotIntegerResponse)
		}
		limit = int(n)
	} else if len(tail) != 0 {
		return nil, errors.New(constants.WrongArgsResponse)
	}

	results := params.Coordinator.ScheduleSingleHop(keys.ReadKeys, func(shardID int, args []string) opresult.Result {
		return setops.OpInter(params.Coordinator.DictionaryFor(shardID), args, false)
	})
	combined := combine.Inter(results)
	if combined.Status == opresult.WrongType {
		return nil, errors.New(constants.WrongTypeResponse)
	}
	count := len(combined.Members)
	if limit >= 0 && limit < count {
		count = limit
	}
	return wire.Integer(count), nil
}

func handleSDIFF(params command.Params) ([]byte, error) {
	keys, err := sdiffKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	sourceShard := params.Coordinator.Pool().ShardOf(keys.ReadKeys[0])

	results := params.Coordinator.ScheduleSingleHop(keys.ReadKeys, func(shardID int, args []string) opresult.Result {
		if shardID == sourceShard {
			return setops.OpDiff(params.Coordinator.DictionaryFor(shardID), args)
		}
		return setops.OpUnion(params.Coordinator.DictionaryFor(shardID), args)
	})
	combined := combine.Diff(results, sourceShard)
	if combined.Status == opresult.WrongType {
		return nil, errors.New(constants.WrongTypeResponse)
	}
	return wire.Array(sortIfScripted(params, combined.Members)), nil
}

func handleSDIFFSTORE(params command.Params) ([]byte, error) {
	keys, err := sdiffstoreKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	dest := keys.WriteKeys[0]
	srcKey := keys.ReadKeys[0]
	allKeys := append([]string{dest}, keys.ReadKeys...)
	destShard := params.Coordinator.Pool().ShardOf(dest)
	sourceShard := params.Coordinator.Pool().ShardOf(srcKey)

	tr := params.Coordinator.Schedule(allKeys)
	results := tr.Execute(func(shardID int, args []string) opresult.Result {
		filtered := filterOut(args, dest)
		if shardID == sourceShard {
			return setops.OpDiff(params.Coordinator.DictionaryFor(shardID), filtered)
		}
		return setops.OpUnion(params.Coordinator.DictionaryFor(shardID), filtered)
	}, false)
	combined := combine.Diff(results, sourceShard)
	if combined.Status == opresult.WrongType {
		tr.Execute(txn.NoOpCb, true)
		return nil, errors.New(constants.WrongTypeResponse)
	}

	tr.Execute(func(shardID int, args []string) opresult.Result {
		if shardID != destShard {
			return opresult.Result{Status: opresult.Skipped}
		}
		return setops.OpAdd(params.Coordinator.DictionaryFor(shardID), dest, combined.Members, true, params.Config.SetMaxIntsetEntries)
	}, true)

	return wire.Integer(len(combined.Members)), nil
}

