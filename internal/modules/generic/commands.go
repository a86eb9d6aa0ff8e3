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

// Package generic carries just enough of the reference server's
// string-value command surface (SET, GET, DEL, EXISTS, PING) to give the
// set family somewhere to exercise its WRONGTYPE path against a
// non-set-typed key, and to give the wire server something pingable.
package generic

import (
	"errors"
	"fmt"

	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/constants"
	"github.com/mwinuka/setshard/internal/opresult"
	"github.com/mwinuka/setshard/internal/wire"
)

func handleSET(params command.Params) ([]byte, error) {
	keys, err := setKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.WriteKeys[0]
	value := params.Command[2]

	params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		entry, _ := params.Coordinator.DictionaryFor(shardID).FindOrCreate(key)
		entry.Value = value
		return opresult.Result{Status: opresult.OK}
	})
	return wire.SimpleString("OK"), nil
}

func handleGET(params command.Params) ([]byte, error) {
	keys, err := getKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]

	res := params.Coordinator.ScheduleSingleHopT(key, func(shardID int, args []string) opresult.Result {
		entry, ok := params.Coordinator.DictionaryFor(shardID).Find(key)
		if !ok {
			return opresult.Result{Status: opresult.KeyNotFound}
		}
		s, ok := entry.Value.(string)
		if !ok {
			return opresult.Result{Status: opresult.WrongType}
		}
		return opresult.Result{Status: opresult.OK, Members: []string{s}}
	})
	switch res.Status {
	case opresult.KeyNotFound:
		return wire.NullBulk(), nil
	case opresult.WrongType:
		return nil, errors.New(constants.WrongTypeResponse)
	}
	return wire.BulkString(res.Members[0]), nil
}

func handleDEL(params command.Params) ([]byte, error) {
	keys, err := delKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	results := params.Coordinator.ScheduleSingleHop(keys.WriteKeys, func(shardID int, args []string) opresult.Result {
		dict := params.Coordinator.DictionaryFor(shardID)
		count := 0
		for _, key := range args {
			if dict.Exists(key) {
				dict.Del(key)
				count++
			}
		}
		return opresult.Result{Status: opresult.OK, Count: count}
	})
	total := 0
	for _, r := range results {
		total += r.Count
	}
	return wire.Integer(total), nil
}

func handleEXISTS(params command.Params) ([]byte, error) {
	keys, err := existsKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}
	results := params.Coordinator.ScheduleSingleHop(keys.ReadKeys, func(shardID int, args []string) opresult.Result {
		dict := params.Coordinator.DictionaryFor(shardID)
		count := 0
		for _, key := range args {
			if dict.Exists(key) {
				count++
			}
		}
		return opresult.Result{Status: opresult.OK, Count: count}
	})
	total := 0
	for _, r := range results {
		total += r.Count
	}
	return wire.Integer(total), nil
}

func handlePING(params command.Params) ([]byte, error) {
	if len(params.Command) > 2 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	if len(params.Command) == 2 {
		return wire.SimpleString(params.Command[1]), nil
	}
	return wire.SimpleString("PONG"), nil
}

func handleCLUSTER(params command.Params) ([]byte, error) {
	if _, err := clusterKeyFunc(params.Command); err != nil {
		return nil, err
	}
	if params.Cluster == nil {
		return wire.Array(nil), nil
	}
	nodes := params.Cluster.Nodes()
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		self := ""
		if n.Self {
			self = " self"
		}
		lines = append(lines, fmt.Sprintf("%s %s:%d%s", n.Name, n.Addr, n.Port, self))
	}
	return wire.Array(lines), nil
}
