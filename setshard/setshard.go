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

// Package setshard is the embeddable counterpart of cmd/setshard: every
// method here is a thin wrapper that encodes its arguments as a command
// line and runs it through the very same command registry the TCP server
// dispatches into, so SetShard.SAdd and a SADD sent over the wire always
// agree. Embed it directly when you don't need a network boundary; call
// Start when you also want to accept RESP connections on the same
// instance.
package setshard

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwinuka/setshard/internal/cluster"
	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/config"
	"github.com/mwinuka/setshard/internal/modules/generic"
	"github.com/mwinuka/setshard/internal/modules/set"
	"github.com/mwinuka/setshard/internal/server"
	"github.com/mwinuka/setshard/internal/shard"
	"github.com/mwinuka/setshard/internal/txn"
)

// SetShard is a standalone, embeddable instance of the shard pool and its
// command registry.
type SetShard struct {
	context  context.Context
	config   config.Config
	coord    *txn.Coordinator
	cluster  *cluster.Membership
	commands map[string]command.Command
	srv      *server.Server
}

// Option configures a SetShard at construction time.
type Option func(*SetShard)

// WithContext supplies a custom base context; every handler invocation
// derives from it. Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(s *SetShard) { s.context = ctx }
}

// WithConfig supplies a custom configuration. Defaults to config.DefaultConfig().
func WithConfig(cfg config.Config) Option {
	return func(s *SetShard) { s.config = cfg }
}

// WithCommands appends extra commands to the registry (for example, ones
// loaded from Lua scripts via internal/scripting).
func WithCommands(cmds []command.Command) Option {
	return func(s *SetShard) {
		for _, c := range cmds {
			s.commands[strings.ToLower(c.Command)] = c
		}
	}
}

// New builds a SetShard: a shard pool sized to cfg.NumShards, a transaction
// coordinator over that pool, and the set and generic command families
// registered and ready to dispatch into.
func New(options ...Option) (*SetShard, error) {
	s := &SetShard{
		context:  context.Background(),
		config:   config.DefaultConfig(),
		commands: make(map[string]command.Command),
	}
	for _, c := range set.Commands() {
		s.commands[strings.ToLower(c.Command)] = c
	}
	for _, c := range generic.Commands() {
		s.commands[strings.ToLower(c.Command)] = c
	}

	for _, opt := range options {
		opt(s)
	}
	// WithConfig may have supplied a Config built by hand, bypassing
	// GetConfig's clamp; re-apply it so an embedder can't exceed the
	// hard-capped set encoding limits or run with a non-positive shard count.
	s.config.Clamp()

	pool := shard.NewPool(s.config.NumShards)
	s.coord = txn.NewCoordinator(pool)

	if s.config.JoinAddr != "" {
		membership, err := cluster.Join(s.context, s.config)
		if err != nil {
			return nil, err
		}
		s.cluster = membership
	}

	cmds := make([]command.Command, 0, len(s.commands))
	for _, c := range s.commands {
		cmds = append(cmds, c)
	}
	s.srv = server.New(s.config, s.coord, s.cluster, cmds)

	return s, nil
}

// Start accepts RESP connections on cfg.BindAddr:cfg.Port until ctx is
// cancelled. Call this only if you also want a network-facing server; the
// Go methods on SetShard work without it.
func (s *SetShard) Start(ctx context.Context) error {
	return s.srv.Start(ctx)
}

// Shutdown stops the RESP listener (if Start was called) and leaves the
// cluster gossip layer (if one was joined).
func (s *SetShard) Shutdown() error {
	if s.srv != nil {
		s.srv.Stop()
	}
	if s.cluster != nil {
		return s.cluster.Leave()
	}
	return nil
}

// handleCommand dispatches cmd through the same lookup/key-extraction/
// handler pipeline the TCP server uses, and returns the raw RESP reply.
func (s *SetShard) handleCommand(cmd []string) ([]byte, error) {
	c, ok := s.commands[strings.ToLower(cmd[0])]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", cmd[0])
	}
	if _, err := c.KeyExtractionFunc(cmd); err != nil {
		return nil, err
	}
	return c.HandlerFunc(command.Params{
		Context:     s.context,
		Command:     cmd,
		Coordinator: s.coord,
		Config:      &s.config,
		Cluster:     s.cluster,
	})
}
