// Package txn is the transaction coordinator interface spec.md §5
// describes: Schedule reserves per-shard hop slots for a command's keys and
// holds each implicated shard exclusively for this transaction, Execute
// runs a callback across every implicated shard and blocks until all of
// them finish — that block is the hop barrier that makes "all of hop k
// completes before any of hop k+1 begins" true by construction — and the
// concluding Execute releases the holds, letting the next transaction on
// those shards proceed. Between Schedule and the concluding Execute, no
// other transaction can run a hop on any shard this one has scheduled.
package txn

import (
	"sort"
	"sync"

	"github.com/mwinuka/setshard/internal/dictionary"
	"github.com/mwinuka/setshard/internal/opresult"
	"github.com/mwinuka/setshard/internal/shard"
)

// ShardCallback is what a shard runs for one hop of one transaction. args
// is that shard's routed subset of the transaction's keys, in the order
// they originally appeared in the command.
type ShardCallback func(shardID int, args []string) opresult.Result

// NoOpCb is the concluding no-op every multi-hop command must schedule on
// its error paths so the transaction queue advances even when nothing
// needs to run.
var NoOpCb ShardCallback = func(int, []string) opresult.Result {
	return opresult.Result{Status: opresult.Skipped}
}

type Coordinator struct {
	pool *shard.Pool
}

func NewCoordinator(pool *shard.Pool) *Coordinator {
	return &Coordinator{pool: pool}
}

func (c *Coordinator) Pool() *shard.Pool {
	return c.pool
}

// DictionaryFor gives shard-local operations the dictionary they mutate. It
// is only safe to call from within a ShardCallback running on shardID's own
// goroutine.
func (c *Coordinator) DictionaryFor(shardID int) *dictionary.Dictionary {
	return c.pool.Shard(shardID).Dict
}

// Transaction pins the shard routing for a fixed key list across every hop
// it runs, so a second Schedule of the same keys is never required between
// a non-concluding hop and its concluding follow-up.
type Transaction struct {
	coord     *Coordinator
	keys      []string
	shardArgs map[int][]string
	shardIDs  []int

	released bool
}

// Schedule reserves hop slots for every shard implicated by keys, in
// ascending shard-id order — a stand-in for "a globally ordered queue" —
// and blocks until it holds every one of those shards exclusively. Every
// caller always locks in ascending shard-id order, so this can never
// deadlock against another in-flight transaction over an overlapping key
// set. The holds are released by the concluding Execute.
func (c *Coordinator) Schedule(keys []string) *Transaction {
	shardArgs := make(map[int][]string)
	seen := make(map[int]bool)
	var shardIDs []int
	for _, k := range keys {
		sid := c.pool.ShardOf(k)
		shardArgs[sid] = append(shardArgs[sid], k)
		if !seen[sid] {
			seen[sid] = true
			shardIDs = append(shardIDs, sid)
		}
	}
	sort.Ints(shardIDs)
	for _, sid := range shardIDs {
		c.pool.Shard(sid).Hold()
	}
	return &Transaction{coord: c, keys: keys, shardArgs: shardArgs, shardIDs: shardIDs}
}

// ShardArgsInShard returns the subslice of the command's key arguments
// routed to shardID, preserving original order. A shard with no routed
// keys gets nil.
func (t *Transaction) ShardArgsInShard(shardID int) []string {
	return t.shardArgs[shardID]
}

func (t *Transaction) UniqueShardCnt() int {
	return len(t.shardIDs)
}

func (t *Transaction) ShardIDs() []int {
	return t.shardIDs
}

// Execute runs cb on every implicated shard and blocks until they've all
// completed — the hop barrier. When isConcluding is true, Execute also
// releases this transaction's holds on every implicated shard once the
// callback has run everywhere, letting the next scheduled transaction on
// those shards proceed; until then, the holds acquired by Schedule keep any
// other transaction from running a hop on the same shards.
func (t *Transaction) Execute(cb ShardCallback, isConcluding bool) []opresult.Result {
	n := t.coord.pool.N()
	results := make([]opresult.Result, n)
	for i := range results {
		results[i] = opresult.Result{Status: opresult.Skipped}
	}

	var wg sync.WaitGroup
	for _, sid := range t.shardIDs {
		wg.Add(1)
		sid := sid
		args := t.shardArgs[sid]
		t.coord.pool.Shard(sid).Submit(func() {
			defer wg.Done()
			results[sid] = cb(sid, args)
		})
	}
	wg.Wait()

	if isConcluding && !t.released {
		t.released = true
		for _, sid := range t.shardIDs {
			t.coord.pool.Shard(sid).Release()
		}
	}
	return results
}

// ScheduleSingleHop is Schedule followed by a single concluding Execute,
// for commands that never need a find/decide phase between hops.
func (c *Coordinator) ScheduleSingleHop(keys []string, cb ShardCallback) []opresult.Result {
	return c.Schedule(keys).Execute(cb, true)
}

// ScheduleSingleHopT is ScheduleSingleHop for the common case of a single
// key: it returns that key's shard's result directly instead of the full
// per-shard vector.
func (c *Coordinator) ScheduleSingleHopT(key string, cb ShardCallback) opresult.Result {
	results := c.ScheduleSingleHop([]string{key}, cb)
	return results[c.pool.ShardOf(key)]
}
