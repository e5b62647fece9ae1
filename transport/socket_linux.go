//go:build linux
// +build linux

// File: transport/socket_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux listening socket using non-blocking accept4 via x/sys/unix.

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/plugbus/plugbus/api"
)

// Socket is one bound, listening IPv4 endpoint. It exclusively owns its
// descriptor until Close.
type Socket struct {
	fd     int
	addr   string // canonical dotted-decimal form
	port   int    // actual bound port (resolved when binding port 0)
	closed bool
}

// listen creates a non-blocking listening socket on a canonical IPv4
// address. Any failure closes the descriptor and leaves no state behind.
func listen(canonicalAddr string, port, backlog int) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("socket create: %w", err)
	}
	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)

	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], parseOctets(canonicalAddr))
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s:%d: %v", api.ErrBind, canonicalAddr, port, err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s:%d: %v", api.ErrBind, canonicalAddr, port, err)
	}

	bound := port
	if sn, err := unix.Getsockname(fd); err == nil {
		if in4, ok := sn.(*unix.SockaddrInet4); ok {
			bound = in4.Port
		}
	}
	return &Socket{fd: fd, addr: canonicalAddr, port: bound}, nil
}

// Accept drains one pending connection. A "would block" outcome returns
// (nil, nil): readiness is a hint across the whole watched set, not a
// per-socket guarantee once a previous accept already drained it.
func (s *Socket) Accept() (*Conn, error) {
	nfd, sa, err := unix.Accept4(s.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.ECONNABORTED {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("accept on %s:%d: %w", s.addr, s.port, err)
	}
	peer := "unknown"
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		peer = fmt.Sprintf("%d.%d.%d.%d:%d",
			in4.Addr[0], in4.Addr[1], in4.Addr[2], in4.Addr[3], in4.Port)
	}
	return &Conn{fd: nfd, peer: peer}, nil
}

// Addr returns the canonical bound address.
func (s *Socket) Addr() string { return s.addr }

// Port returns the actual bound port.
func (s *Socket) Port() int { return s.port }

// AddrPort returns the bound endpoint in "ip:port" form.
func (s *Socket) AddrPort() string { return fmt.Sprintf("%s:%d", s.addr, s.port) }

// Fd returns the listening descriptor for readiness watching.
func (s *Socket) Fd() int { return s.fd }

// Close releases the listening descriptor. Idempotent.
func (s *Socket) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return unix.Close(s.fd)
}

// parseOctets converts a canonical dotted-decimal address to its four
// octets. The input has already passed normalize.IPv4.
func parseOctets(canonical string) []byte {
	out := make([]byte, 0, 4)
	n := 0
	for i := 0; i <= len(canonical); i++ {
		if i == len(canonical) || canonical[i] == '.' {
			out = append(out, byte(n))
			n = 0
			continue
		}
		n = n*10 + int(canonical[i]-'0')
	}
	return out
}
