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

package setshard

import (
	"strconv"

	"github.com/mwinuka/setshard/internal/wire"
)

// SAdd adds one or more members to the set at key, creating it if it
// doesn't exist. Returns the number of members actually added.
func (s *SetShard) SAdd(key string, members ...string) (int, error) {
	b, err := s.handleCommand(append([]string{"SADD", key}, members...))
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

// SRem removes one or more members from the set at key. Returns the number
// of members actually removed.
func (s *SetShard) SRem(key string, members ...string) (int, error) {
	b, err := s.handleCommand(append([]string{"SREM", key}, members...))
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

// SIsMember reports whether member belongs to the set at key.
func (s *SetShard) SIsMember(key, member string) (bool, error) {
	b, err := s.handleCommand([]string{"SISMEMBER", key, member})
	if err != nil {
		return false, err
	}
	return wire.ParseBoolean(b)
}

// SMIsMember reports, for each member in order, whether it belongs to the
// set at key.
func (s *SetShard) SMIsMember(key string, members ...string) ([]bool, error) {
	b, err := s.handleCommand(append([]string{"SMISMEMBER", key}, members...))
	if err != nil {
		return nil, err
	}
	ints, err := wire.ParseIntegerArray(b)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(ints))
	for i, v := range ints {
		out[i] = v == 1
	}
	return out, nil
}

// SCard returns the number of members in the set at key.
func (s *SetShard) SCard(key string) (int, error) {
	b, err := s.handleCommand([]string{"SCARD", key})
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

// SMembers returns every member of the set at key.
func (s *SetShard) SMembers(key string) ([]string, error) {
	b, err := s.handleCommand([]string{"SMEMBERS", key})
	if err != nil {
		return nil, err
	}
	return wire.ParseStringArray(b)
}

// SRandMember returns up to count members from the set at key without
// removing them. A count of 0 uses the server's default of one member.
func (s *SetShard) SRandMember(key string, count int) ([]string, error) {
	cmd := []string{"SRANDMEMBER", key}
	if count != 0 {
		cmd = append(cmd, strconv.Itoa(count))
	}
	b, err := s.handleCommand(cmd)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		// Without a count the reply is a single bulk string, or null bulk.
		if string(b) == string(wire.NullBulk()) {
			return []string{}, nil
		}
		m, err := wire.ParseString(b)
		if err != nil {
			return nil, err
		}
		return []string{m}, nil
	}
	return wire.ParseStringArray(b)
}

// SPop removes and returns up to count members from the set at key. A count
// of 0 uses the server's default of one member.
func (s *SetShard) SPop(key string, count int) ([]string, error) {
	cmd := []string{"SPOP", key}
	if count != 0 {
		cmd = append(cmd, strconv.Itoa(count))
	}
	b, err := s.handleCommand(cmd)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		// Without a count the reply is a single bulk string, or null bulk.
		if string(b) == string(wire.NullBulk()) {
			return []string{}, nil
		}
		m, err := wire.ParseString(b)
		if err != nil {
			return nil, err
		}
		return []string{m}, nil
	}
	return wire.ParseStringArray(b)
}

// SMove moves member from the set at source to the set at destination.
// Returns true if the member was moved.
func (s *SetShard) SMove(source, destination, member string) (bool, error) {
	b, err := s.handleCommand([]string{"SMOVE", source, destination, member})
	if err != nil {
		return false, err
	}
	return wire.ParseBoolean(b)
}

// SUnion returns the union of the sets at the given keys.
func (s *SetShard) SUnion(keys ...string) ([]string, error) {
	b, err := s.handleCommand(append([]string{"SUNION"}, keys...))
	if err != nil {
		return nil, err
	}
	return wire.ParseStringArray(b)
}

// SUnionStore stores the union of the sets at keys into destination and
// returns its cardinality.
func (s *SetShard) SUnionStore(destination string, keys ...string) (int, error) {
	b, err := s.handleCommand(append([]string{"SUNIONSTORE", destination}, keys...))
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

// SInter returns the intersection of the sets at the given keys.
func (s *SetShard) SInter(keys ...string) ([]string, error) {
	b, err := s.handleCommand(append([]string{"SINTER"}, keys...))
	if err != nil {
		return nil, err
	}
	return wire.ParseStringArray(b)
}

// SInterStore stores the intersection of the sets at keys into destination
// and returns its cardinality.
func (s *SetShard) SInterStore(destination string, keys ...string) (int, error) {
	b, err := s.handleCommand(append([]string{"SINTERSTORE", destination}, keys...))
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

// SInterCard returns the cardinality of the intersection of the sets at
// keys. limit caps the count when positive.
func (s *SetShard) SInterCard(limit int, keys ...string) (int, error) {
	cmd := append([]string{"SINTERCARD", strconv.Itoa(len(keys))}, keys...)
	if limit > 0 {
		cmd = append(cmd, "LIMIT", strconv.Itoa(limit))
	}
	b, err := s.handleCommand(cmd)
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

// SDiff returns the members present in the set at keys[0] but not in any of
// the remaining sets.
func (s *SetShard) SDiff(keys ...string) ([]string, error) {
	b, err := s.handleCommand(append([]string{"SDIFF"}, keys...))
	if err != nil {
		return nil, err
	}
	return wire.ParseStringArray(b)
}

// SDiffStore stores the difference between the set at keys[0] and the
// remaining sets into destination, and returns its cardinality.
func (s *SetShard) SDiffStore(destination string, keys ...string) (int, error) {
	b, err := s.handleCommand(append([]string{"SDIFFSTORE", destination}, keys...))
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

