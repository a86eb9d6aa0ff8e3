package shard_test

import (
	"sync"
	"testing"
	"time"

	"github.com/mwinuka/setshard/internal/shard"
)

func Test_ShardOfIsStableForLifeOfProcess(t *testing.T) {
	pool := shard.NewPool(8)
	defer pool.Stop()

	first := pool.ShardOf("mykey")
	for i := 0; i < 100; i++ {
		if got := pool.ShardOf("mykey"); got != first {
			t.Fatalf("expected ShardOf to be stable, got %d then %d", first, got)
		}
	}
	if first < 0 || first >= pool.N() {
		t.Fatalf("shard id %d out of range [0,%d)", first, pool.N())
	}
}

func Test_SubmitRunsJobOnOwningShard(t *testing.T) {
	pool := shard.NewPool(4)
	defer pool.Stop()

	sid := pool.ShardOf("k")
	var wg sync.WaitGroup
	wg.Add(1)
	ran := false
	pool.Shard(sid).Submit(func() {
		defer wg.Done()
		ran = true
	})

	waitOrTimeout(t, &wg, time.Second)
	if !ran {
		t.Fatal("expected submitted job to run")
	}
}

func Test_JobsOnDifferentShardsRunConcurrently(t *testing.T) {
	pool := shard.NewPool(4)
	defer pool.Stop()

	var wg sync.WaitGroup
	release := make(chan struct{})
	started := make(chan int, 2)

	for _, sid := range []int{0, 1} {
		wg.Add(1)
		sid := sid
		pool.Shard(sid).Submit(func() {
			defer wg.Done()
			started <- sid
			<-release
		})
	}

	// Both shard-0 and shard-1 jobs must be able to start before either
	// finishes, proving they don't serialize behind a single worker.
	timeout := time.After(time.Second)
	seen := map[int]bool{}
	for len(seen) < 2 {
		select {
		case sid := <-started:
			seen[sid] = true
		case <-timeout:
			t.Fatal("timed out waiting for both shard jobs to start")
		}
	}
	close(release)
	waitOrTimeout(t, &wg, time.Second)
}

func waitOrTimeout(t *testing.T, wg *sync.WaitGroup, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("timed out waiting for jobs to complete")
	}
}
