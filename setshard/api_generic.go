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

import "github.com/mwinuka/setshard/internal/wire"

// Set stores value under key, overwriting any existing value and type.
func (s *SetShard) Set(key, value string) error {
	_, err := s.handleCommand([]string{"SET", key, value})
	return err
}

// Get returns the string value stored at key, or an empty string if the key
// does not exist.
func (s *SetShard) Get(key string) (string, error) {
	b, err := s.handleCommand([]string{"GET", key})
	if err != nil {
		return "", err
	}
	return wire.ParseString(b)
}

// Del removes the given keys and returns how many of them existed.
func (s *SetShard) Del(keys ...string) (int, error) {
	b, err := s.handleCommand(append([]string{"DEL"}, keys...))
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

// Exists returns how many of the given keys are present.
func (s *SetShard) Exists(keys ...string) (int, error) {
	b, err := s.handleCommand(append([]string{"EXISTS"}, keys...))
	if err != nil {
		return 0, err
	}
	return wire.ParseInteger(b)
}

// Ping checks connectivity to the local shard pool, echoing message if given.
func (s *SetShard) Ping(message string) (string, error) {
	cmd := []string{"PING"}
	if message != "" {
		cmd = append(cmd, message)
	}
	b, err := s.handleCommand(cmd)
	if err != nil {
		return "", err
	}
	return wire.ParseString(b)
}

// ClusterNodes lists the peers visible to this node's gossip layer.
func (s *SetShard) ClusterNodes() ([]string, error) {
	b, err := s.handleCommand([]string{"CLUSTER", "NODES"})
	if err != nil {
		return nil, err
	}
	return wire.ParseStringArray(b)
}
