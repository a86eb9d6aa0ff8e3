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

// Package server exposes the shard pool over a plain RESP TCP connection,
// the way the teacher's embedded server exposes its keyspace: accept, read
// one RESP array per round trip, dispatch to the command registry, write
// the reply back on the same connection.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tidwall/resp"

	"github.com/mwinuka/setshard/internal/cluster"
	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/config"
	"github.com/mwinuka/setshard/internal/txn"
)

// Server owns the listener and the command registry it dispatches into.
type Server struct {
	config   config.Config
	coord    *txn.Coordinator
	cluster  *cluster.Membership
	commands map[string]command.Command
	listener net.Listener
	connID   atomic.Uint64
	quit     chan struct{}
	stopOnce sync.Once
}

// New indexes cmds by lowercased name so lookups are case-insensitive, the
// way RESP clients expect (SADD, sadd and Sadd are the same command).
// membership may be nil when the node was started without cluster discovery.
func New(cfg config.Config, coord *txn.Coordinator, membership *cluster.Membership, cmds []command.Command) *Server {
	indexed := make(map[string]command.Command, len(cmds))
	for _, c := range cmds {
		indexed[strings.ToLower(c.Command)] = c
	}
	return &Server{
		config:   cfg,
		coord:    coord,
		cluster:  membership,
		commands: indexed,
		quit:     make(chan struct{}),
	}
}

// Start blocks, accepting connections until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{KeepAlive: 200 * time.Millisecond}
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.config.BindAddr, s.config.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = listener
	log.Printf("setshard listening at %s:%d (%d shards)\n", s.config.BindAddr, s.config.Port, s.config.NumShards)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return nil
			default:
				log.Printf("accept error: %v\n", err)
				return err
			}
		}
		go s.handleConnection(ctx, conn)
	}
}

// Stop closes the listener, unblocking Start's Accept loop. Calls after the
// first are no-ops.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	id := s.connID.Add(1)
	defer func() {
		log.Printf("closing connection %d\n", id)
		_ = conn.Close()
	}()

	reader := bufio.NewReader(conn)
	for {
		fields, err := readCommand(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("connection %d read error: %v\n", id, err)
			}
			return
		}
		if len(fields) == 0 {
			continue
		}

		reply := s.dispatch(ctx, fields)
		if _, err := conn.Write(reply); err != nil {
			log.Printf("connection %d write error: %v\n", id, err)
			return
		}
	}
}

// dispatch never returns an error; a lookup or handler failure is folded
// into a RESP error reply so one bad command never drops the connection.
func (s *Server) dispatch(ctx context.Context, fields []string) []byte {
	c, ok := s.commands[strings.ToLower(fields[0])]
	if !ok {
		return []byte(fmt.Sprintf("-ERR unknown command '%s'\r\n", fields[0]))
	}
	if _, err := c.KeyExtractionFunc(fields); err != nil {
		return []byte(fmt.Sprintf("-ERR %s\r\n", err.Error()))
	}
	out, err := c.HandlerFunc(command.Params{
		Context:     ctx,
		Command:     fields,
		Coordinator: s.coord,
		Config:      &s.config,
		Cluster:     s.cluster,
	})
	if err != nil {
		return []byte(fmt.Sprintf("-ERR %s\r\n", err.Error()))
	}
	return out
}

// readCommand pulls exactly one RESP array of bulk strings off the wire,
// the request-side counterpart of internal/wire's reply builders.
func readCommand(r *bufio.Reader) ([]string, error) {
	rd := resp.NewReader(r)
	value, _, err := rd.ReadValue()
	if err != nil {
		return nil, err
	}
	arr := value.Array()
	fields := make([]string, 0, len(arr))
	for _, v := range arr {
		fields = append(fields, v.String())
	}
	return fields, nil
}
