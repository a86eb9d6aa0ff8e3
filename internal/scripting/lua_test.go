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

package scripting

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/config"
	"github.com/mwinuka/setshard/internal/modules/set"
	"github.com/mwinuka/setshard/internal/shard"
	"github.com/mwinuka/setshard/internal/txn"
)

const seedAndCountScript = `
command = "seedandcount"
module = "generic"
categories = {"write"}
description = "seeds a set via sadd then reports its cardinality via scard"
sync = true

function keyExtractionFunc(cmd)
    return {readKeys = {}, writeKeys = {cmd[2]}}
end

function handlerFunc(cmd, call)
    local key = cmd[2]
    local addReply, addErr = call("SADD", key, "1", "2", "3")
    if addErr ~= nil then
        return nil, addErr
    end
    local cardReply, cardErr = call("SCARD", key)
    if cardErr ~= nil then
        return nil, cardErr
    end
    return cardReply, nil
end
`

func writeScript(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.lua")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func Test_LoadCommandDispatchesIntoRegistryWithScriptContext(t *testing.T) {
	pool := shard.NewPool(4)
	coord := txn.NewCoordinator(pool)
	cfg := config.DefaultConfig()

	registry := make(map[string]command.Command)
	for _, c := range set.Commands() {
		registry[strings.ToLower(c.Command)] = c
	}

	path := writeScript(t, seedAndCountScript)
	loaded, err := LoadCommand(path, registry)
	if err != nil {
		t.Fatalf("LoadCommand: %v", err)
	}
	if loaded.Command != "seedandcount" {
		t.Fatalf("expected command name 'seedandcount', got %q", loaded.Command)
	}

	keys, err := loaded.KeyExtractionFunc([]string{"SEEDANDCOUNT", "myset"})
	if err != nil {
		t.Fatalf("KeyExtractionFunc: %v", err)
	}
	if len(keys.WriteKeys) != 1 || keys.WriteKeys[0] != "myset" {
		t.Fatalf("unexpected write keys: %+v", keys)
	}

	reply, err := loaded.HandlerFunc(command.Params{
		Context:     context.Background(),
		Command:     []string{"SEEDANDCOUNT", "myset"},
		Coordinator: coord,
		Config:      &cfg,
	})
	if err != nil {
		t.Fatalf("HandlerFunc: %v", err)
	}
	if string(reply) != ":3\r\n" {
		t.Fatalf("expected cardinality reply :3, got %q", reply)
	}
}

const missingHandlerScript = `
command = "broken"
module = "generic"
function keyExtractionFunc(cmd)
    return {readKeys = {}, writeKeys = {}}
end
`

func Test_LoadCommandRejectsScriptMissingHandlerFunc(t *testing.T) {
	path := writeScript(t, missingHandlerScript)
	if _, err := LoadCommand(path, nil); err == nil {
		t.Fatal("expected an error for a script with no handlerFunc")
	}
}
