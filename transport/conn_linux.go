//go:build linux
// +build linux

// File: transport/conn_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Accepted peer connection over a non-blocking descriptor.

package transport

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/plugbus/plugbus/api"
)

// Conn is one accepted peer endpoint. The connection registry is its sole
// owner after acceptance; the server loop borrows it per tick.
type Conn struct {
	fd     int
	peer   string
	closed bool
}

var _ api.Conn = (*Conn)(nil)

// Read fills p with available bytes. A would-block outcome is (0, nil):
// readiness was a hint, not a guarantee. Peer close reports io.EOF.
func (c *Conn) Read(p []byte) (int, error) {
	n, err := unix.Read(c.fd, p)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read from %s: %w", c.peer, err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write sends all of p, looping over short writes. The descriptor is
// non-blocking; EAGAIN retries since handlers expect whole replies out.
func (c *Conn) Write(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := unix.Write(c.fd, p[total:])
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			continue
		}
		if err != nil {
			return total, fmt.Errorf("write to %s: %w", c.peer, err)
		}
		total += n
	}
	return total, nil
}

// Close releases the descriptor exactly once.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return unix.Close(c.fd)
}

// RemoteAddr returns the peer address in "ip:port" form.
func (c *Conn) RemoteAddr() string { return c.peer }

// Fd returns the connection descriptor for readiness watching.
func (c *Conn) Fd() int { return c.fd }
