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

// Package cluster gives every node an informational view of its peers via
// memberlist gossip. Unlike the teacher's memberlist layer, nothing here
// drives consensus or forwards mutations: each node still owns and serves
// its own shards, and CLUSTER NODES only reports who else has joined.
package cluster

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hashicorp/memberlist"
	"github.com/sethvargo/go-retry"

	"github.com/mwinuka/setshard/internal/clock"
	"github.com/mwinuka/setshard/internal/config"
)

// Membership wraps a memberlist instance scoped to peer discovery only.
type Membership struct {
	cfg  config.Config
	list *memberlist.Memberlist

	// joinDuration is zero when no JoinAddr was configured.
	joinDuration time.Duration
}

// JoinDuration reports how long the initial join to cfg.JoinAddr took,
// retries included. Zero if this node started without a seed to join.
func (m *Membership) JoinDuration() time.Duration {
	return m.joinDuration
}

// Join starts the gossip layer bound to cfg.BindAddr:cfg.DiscoveryPort and,
// if cfg.JoinAddr is set, retries joining that seed with a fibonacci
// backoff the way the teacher retries its own raft/memberlist join.
func Join(ctx context.Context, cfg config.Config) (*Membership, error) {
	return join(ctx, cfg, clock.RealClock{})
}

func join(ctx context.Context, cfg config.Config, clk clock.Clock) (*Membership, error) {
	mlConfig := memberlist.DefaultLocalConfig()
	mlConfig.BindAddr = cfg.BindAddr
	mlConfig.BindPort = int(cfg.DiscoveryPort)
	mlConfig.AdvertisePort = int(cfg.DiscoveryPort)
	mlConfig.Name = fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.Port)

	list, err := memberlist.Create(mlConfig)
	if err != nil {
		return nil, fmt.Errorf("memberlist create: %w", err)
	}

	m := &Membership{cfg: cfg, list: list}

	if cfg.JoinAddr != "" {
		backoff := retry.WithMaxRetries(5, retry.WithCappedDuration(2*time.Second, retry.NewFibonacci(200*time.Millisecond)))
		started := clk.Now()
		err := retryJoin(ctx, clk, backoff, func() error {
			_, err := list.Join([]string{cfg.JoinAddr})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("join %s: %w", cfg.JoinAddr, err)
		}
		m.joinDuration = clk.Now().Sub(started)
	}

	return m, nil
}

// retryJoin drives the backoff loop itself instead of calling retry.Do, so
// the wait between attempts goes through clk.After rather than a bare
// time.Sleep — the same substitution internal/shard's run loop and
// internal/txn's hop barrier don't need but a retry loop with a wall-clock
// backoff does, since it's the one piece of this package a test would
// otherwise have to wait out for real.
func retryJoin(ctx context.Context, clk clock.Clock, backoff retry.Backoff, attempt func() error) error {
	for {
		err := attempt()
		if err == nil {
			return nil
		}
		log.Printf("cluster join attempt failed: %v\n", err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		next, stop := backoff.Next()
		if stop {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clk.After(next):
		}
	}
}

// NodeInfo is what CLUSTER NODES reports about a single member.
type NodeInfo struct {
	Name string
	Addr string
	Port uint16
	Self bool
}

// Nodes returns every member currently visible to the local gossip layer,
// including this node itself.
func (m *Membership) Nodes() []NodeInfo {
	members := m.list.Members()
	local := m.list.LocalNode()
	infos := make([]NodeInfo, 0, len(members))
	for _, n := range members {
		infos = append(infos, NodeInfo{
			Name: n.Name,
			Addr: n.Addr.String(),
			Port: n.Port,
			Self: local != nil && n.Name == local.Name,
		})
	}
	return infos
}

// Leave gracefully removes this node from the gossip ring.
func (m *Membership) Leave() error {
	if err := m.list.Leave(500 * time.Millisecond); err != nil {
		return fmt.Errorf("leave: %w", err)
	}
	return m.list.Shutdown()
}
