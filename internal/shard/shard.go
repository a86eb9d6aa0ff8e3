// Package shard is the thread-per-core runtime stand-in: each Shard owns
// one Dictionary and runs the jobs submitted to it, one at a time, on its
// own goroutine. Go's scheduler multiplexes goroutines onto OS threads for
// us, so this isn't literally a pinned core the way the reference server
// runs, but the execution model it preserves is the one the set family
// actually depends on: a callback that touches a shard's dictionary never
// races with another callback touching the same dictionary, and no
// callback ever blocks on I/O while holding that exclusivity.
package shard

import (
	"hash/fnv"
	"sync"

	"github.com/mwinuka/setshard/internal/dictionary"
)

// Job is a unit of work a transaction hands to a shard. It must be
// synchronous and non-suspending: no network I/O, no channel receives that
// might block indefinitely.
type Job func()

type Shard struct {
	ID   int
	Dict *dictionary.Dictionary

	jobs chan Job
	stop chan struct{}

	// hold is the cross-hop exclusivity gate: a transaction acquires it for
	// every shard it schedules and releases it only after its concluding
	// Execute, so no other transaction's hop can interleave on that shard in
	// between. It is taken and released by whichever goroutine drives the
	// transaction, never by the shard's own run loop.
	hold sync.Mutex
}

func newShard(id int) *Shard {
	return &Shard{
		ID:   id,
		Dict: dictionary.New(),
		jobs: make(chan Job, 64),
		stop: make(chan struct{}),
	}
}

func (s *Shard) run() {
	for {
		select {
		case job := <-s.jobs:
			job()
		case <-s.stop:
			return
		}
	}
}

// Submit enqueues a job for this shard's goroutine and returns immediately;
// the caller must synchronize on the job's own completion signal (the
// transaction layer uses a WaitGroup for this).
func (s *Shard) Submit(job Job) {
	s.jobs <- job
}

func (s *Shard) Stop() {
	close(s.stop)
}

// Hold blocks until this shard's cross-hop exclusivity gate is free, then
// acquires it. Release must be called exactly once, after the transaction's
// concluding hop, to let the next transaction in.
func (s *Shard) Hold() {
	s.hold.Lock()
}

// Release frees a gate acquired by Hold.
func (s *Shard) Release() {
	s.hold.Unlock()
}

// Pool owns every shard and routes keys to them.
type Pool struct {
	shards []*Shard
}

func NewPool(n int) *Pool {
	if n <= 0 {
		n = 1
	}
	p := &Pool{shards: make([]*Shard, n)}
	for i := 0; i < n; i++ {
		p.shards[i] = newShard(i)
		go p.shards[i].run()
	}
	return p
}

func (p *Pool) N() int {
	return len(p.shards)
}

func (p *Pool) Shard(id int) *Shard {
	return p.shards[id]
}

// ShardOf computes shard_of(key) = hash(key) mod N_shards. The hash is
// stable for the life of the process, which is all a single transaction's
// duration requires.
func (p *Pool) ShardOf(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(p.shards)))
}

func (p *Pool) Stop() {
	for _, s := range p.shards {
		s.Stop()
	}
}
