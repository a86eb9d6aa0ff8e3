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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mwinuka/setshard/internal/cluster"
	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/config"
	"github.com/mwinuka/setshard/internal/modules/generic"
	"github.com/mwinuka/setshard/internal/modules/set"
	"github.com/mwinuka/setshard/internal/scripting"
	"github.com/mwinuka/setshard/internal/server"
	"github.com/mwinuka/setshard/internal/shard"
	"github.com/mwinuka/setshard/internal/txn"
)

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := shard.NewPool(conf.NumShards)
	coord := txn.NewCoordinator(pool)

	var membership *cluster.Membership
	if conf.JoinAddr != "" || conf.DiscoveryPort != 0 {
		membership, err = cluster.Join(ctx, conf)
		if err != nil {
			log.Printf("cluster discovery disabled: %v\n", err)
			membership = nil
		}
	}

	var commands []command.Command
	commands = append(commands, set.Commands()...)
	commands = append(commands, generic.Commands()...)

	if conf.ScriptsDir != "" {
		registry := make(map[string]command.Command, len(commands))
		for _, c := range commands {
			registry[strings.ToLower(c.Command)] = c
		}
		matches, err := filepath.Glob(filepath.Join(conf.ScriptsDir, "*.lua"))
		if err != nil {
			log.Printf("scripts-dir glob: %v\n", err)
		}
		for _, path := range matches {
			loaded, err := scripting.LoadCommand(path, registry)
			if err != nil {
				log.Printf("skipping script %s: %v\n", path, err)
				continue
			}
			commands = append(commands, loaded)
			registry[strings.ToLower(loaded.Command)] = loaded
		}
	}

	srv := server.New(conf, coord, membership, commands)

	cancelCh := make(chan os.Signal, 1)
	signal.Notify(cancelCh, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Printf("server stopped: %v\n", err)
		}
	}()

	<-cancelCh

	srv.Stop()
	if membership != nil {
		if err := membership.Leave(); err != nil {
			log.Printf("cluster leave: %v\n", err)
		}
	}
}
