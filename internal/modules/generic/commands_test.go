package generic_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/config"
	"github.com/mwinuka/setshard/internal/modules/generic"
	"github.com/mwinuka/setshard/internal/shard"
	"github.com/mwinuka/setshard/internal/txn"
)

func newHarness() (map[string]command.Command, *txn.Coordinator, *config.Config) {
	pool := shard.NewPool(4)
	coord := txn.NewCoordinator(pool)
	cfg := config.DefaultConfig()
	commands := make(map[string]command.Command)
	for _, c := range generic.Commands() {
		commands[strings.ToLower(c.Command)] = c
	}
	return commands, coord, &cfg
}

func run(t *testing.T, commands map[string]command.Command, coord *txn.Coordinator, cfg *config.Config, cmd ...string) ([]byte, error) {
	t.Helper()
	c, ok := commands[strings.ToLower(cmd[0])]
	if !ok {
		t.Fatalf("no command registered for %q", cmd[0])
	}
	if _, err := c.KeyExtractionFunc(cmd); err != nil {
		return nil, err
	}
	return c.HandlerFunc(command.Params{Context: context.Background(), Command: cmd, Coordinator: coord, Config: cfg})
}

func Test_SETAndGET(t *testing.T) {
	commands, coord, cfg := newHarness()
	reply, err := run(t, commands, coord, cfg, "SET", "k", "hello")
	if err != nil || string(reply) != "+OK\r\n" {
		t.Fatalf("expected +OK, got %q err %v", reply, err)
	}
	reply, err = run(t, commands, coord, cfg, "GET", "k")
	if err != nil || string(reply) != "$5\r\nhello\r\n" {
		t.Fatalf("expected $5 hello, got %q err %v", reply, err)
	}
}

func Test_GETMissingKeyIsNullBulk(t *testing.T) {
	commands, coord, cfg := newHarness()
	reply, err := run(t, commands, coord, cfg, "GET", "missing")
	if err != nil || string(reply) != "$-1\r\n" {
		t.Fatalf("expected $-1, got %q err %v", reply, err)
	}
}

func Test_DELCountsOnlyExistingKeys(t *testing.T) {
	commands, coord, cfg := newHarness()
	run(t, commands, coord, cfg, "SET", "a", "1")
	reply, err := run(t, commands, coord, cfg, "DEL", "a", "missing")
	if err != nil || string(reply) != ":1\r\n" {
		t.Fatalf("expected :1, got %q err %v", reply, err)
	}
}

func Test_EXISTSCountsAcrossKeys(t *testing.T) {
	commands, coord, cfg := newHarness()
	run(t, commands, coord, cfg, "SET", "a", "1")
	run(t, commands, coord, cfg, "SET", "b", "2")
	reply, err := run(t, commands, coord, cfg, "EXISTS", "a", "b", "missing")
	if err != nil || string(reply) != ":2\r\n" {
		t.Fatalf("expected :2, got %q err %v", reply, err)
	}
}

func Test_CLUSTERNODESWithNoMembershipIsEmptyArray(t *testing.T) {
	commands, coord, cfg := newHarness()
	reply, err := run(t, commands, coord, cfg, "CLUSTER", "NODES")
	if err != nil || string(reply) != "*0\r\n" {
		t.Fatalf("expected empty array, got %q err %v", reply, err)
	}
}

func Test_PINGWithAndWithoutMessage(t *testing.T) {
	commands, coord, cfg := newHarness()
	reply, err := run(t, commands, coord, cfg, "PING")
	if err != nil || string(reply) != "+PONG\r\n" {
		t.Fatalf("expected +PONG, got %q err %v", reply, err)
	}
	reply, err = run(t, commands, coord, cfg, "PING", "hi")
	if err != nil || string(reply) != "+hi\r\n" {
		t.Fatalf("expected +hi, got %q err %v", reply, err)
	}
}
