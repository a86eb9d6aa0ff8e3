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

// Package testutil carries the handful of connection-plumbing helpers the
// teacher's own test suites lean on, so that setshard's end-to-end server
// tests don't have to reinvent them.
package testutil

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"
)

// GetFreePort asks the OS for an ephemeral port, then immediately releases
// it so a test server can bind it a moment later.
func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = l.Close()
	}()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// GetConnection dials addr:port, retrying while the listener hasn't come up
// yet (a freshly spawned test server's Start goroutine may not have called
// Accept the first time this is tried).
func GetConnection(addr string, port int) (net.Conn, error) {
	var conn net.Conn
	var err error
	done := make(chan struct{})

	go func() {
		for {
			conn, err = net.Dial("tcp", fmt.Sprintf("%s:%d", addr, port))
			var opErr *net.OpError
			if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
				continue
			}
			break
		}
		close(done)
	}()

	timer := time.NewTimer(5 * time.Second)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil, errors.New("connection timeout")
	case <-done:
		return conn, err
	}
}
