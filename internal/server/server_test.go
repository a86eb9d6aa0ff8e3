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

package server

import (
	"context"
	"testing"
	"time"

	"github.com/tidwall/resp"

	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/config"
	"github.com/mwinuka/setshard/internal/modules/generic"
	"github.com/mwinuka/setshard/internal/modules/set"
	"github.com/mwinuka/setshard/internal/shard"
	"github.com/mwinuka/setshard/internal/testutil"
	"github.com/mwinuka/setshard/internal/txn"
)

func startTestServer(t *testing.T) (*resp.Conn, func()) {
	t.Helper()

	port, err := testutil.GetFreePort()
	if err != nil {
		t.Fatalf("could not get free port: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.BindAddr = "localhost"
	cfg.Port = uint16(port)
	cfg.NumShards = 4

	pool := shard.NewPool(cfg.NumShards)
	coord := txn.NewCoordinator(pool)

	var cmds []command.Command
	cmds = append(cmds, set.Commands()...)
	cmds = append(cmds, generic.Commands()...)

	srv := New(cfg, coord, nil, cmds)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = srv.Start(ctx)
	}()

	conn, err := testutil.GetConnection(cfg.BindAddr, port)
	if err != nil {
		cancel()
		t.Fatalf("could not connect: %v", err)
	}
	client := resp.NewConn(conn)

	return client, func() {
		cancel()
		srv.Stop()
		_ = conn.Close()
		time.Sleep(10 * time.Millisecond)
	}
}

func sendCommand(t *testing.T, client *resp.Conn, args ...string) resp.Value {
	t.Helper()

	values := make([]resp.Value, len(args))
	for i, a := range args {
		values[i] = resp.StringValue(a)
	}
	if err := client.WriteArray(values); err != nil {
		t.Fatalf("write command: %v", err)
	}
	v, _, err := client.ReadValue()
	if err != nil {
		t.Fatalf("read reply: %v", err)
	}
	return v
}

func Test_ServerRoundTripsSADDAndSMEMBERS(t *testing.T) {
	client, stop := startTestServer(t)
	defer stop()

	if v := sendCommand(t, client, "SADD", "s", "a", "b", "a"); v.Integer() != 2 {
		t.Fatalf("expected SADD to add 2 new members, got %v", v)
	}

	v := sendCommand(t, client, "SMEMBERS", "s")
	members := v.Array()
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d (%v)", len(members), v)
	}
}

func Test_ServerUnknownCommandIsRESPError(t *testing.T) {
	client, stop := startTestServer(t)
	defer stop()

	v := sendCommand(t, client, "NOTACOMMAND")
	if v.Type().String() != "Error" {
		t.Fatalf("expected error reply, got %v", v)
	}
}

func Test_ServerPING(t *testing.T) {
	client, stop := startTestServer(t)
	defer stop()

	v := sendCommand(t, client, "PING")
	if v.String() != "PONG" {
		t.Fatalf("expected PONG, got %q", v.String())
	}
}
