// Package command is the trimmed-down HandlerFuncParams/Command surface
// the set and generic modules dispatch through. The full engine exposes a
// much larger params object (ACL, AOF, replication, pub/sub, snapshots);
// none of that is in scope here, so Params only carries what a set-family
// handler actually needs: the parsed command, a way to schedule
// transactions against the shard pool, and the live configuration.
package command

import (
	"context"

	"github.com/mwinuka/setshard/internal/cluster"
	"github.com/mwinuka/setshard/internal/config"
	"github.com/mwinuka/setshard/internal/txn"
)

// KeyExtractionFuncResult mirrors the ACL layer's key-classification
// contract: which keys a command reads from and which it writes to.
type KeyExtractionFuncResult struct {
	ReadKeys  []string
	WriteKeys []string
}

// KeyExtractionFunc is included with every command. cmd is the full
// command line (e.g. []string{"SADD", "s", "1", "2"}).
type KeyExtractionFunc func(cmd []string) (KeyExtractionFuncResult, error)

// Params is what a handler receives when its command is dispatched.
type Params struct {
	Context     context.Context
	Command     []string
	Coordinator *txn.Coordinator
	Config      *config.Config
	// Cluster is nil when the node was started without a discovery seed
	// or peers; CLUSTER NODES replies with an empty array in that case.
	Cluster *cluster.Membership
	// ScriptContext is true when this command runs as part of a scripted
	// transaction; handlers whose reply order is otherwise
	// encoding/hash-dependent must sort lexicographically (spec §6.1).
	ScriptContext bool
}

// HandlerFunc does the bulk of a command's work and returns the raw RESP
// reply to forward to the client.
type HandlerFunc func(params Params) ([]byte, error)

type Command struct {
	Command     string
	Module      string
	Categories  []string
	Description string
	Sync        bool
	KeyExtractionFunc
	HandlerFunc
}
