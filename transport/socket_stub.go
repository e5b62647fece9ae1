//go:build !linux
// +build !linux

// File: transport/socket_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stubs for unsupported platforms.

package transport

import "github.com/plugbus/plugbus/api"

// Socket is unavailable outside Linux.
type Socket struct {
	addr string
	port int
}

func listen(string, int, int) (*Socket, error) { return nil, api.ErrNotSupported }

func (s *Socket) Accept() (*Conn, error) { return nil, api.ErrNotSupported }
func (s *Socket) Addr() string           { return s.addr }
func (s *Socket) Port() int              { return s.port }
func (s *Socket) AddrPort() string       { return "" }
func (s *Socket) Fd() int                { return -1 }
func (s *Socket) Close() error           { return nil }

// Conn is unavailable outside Linux.
type Conn struct {
	peer string
}

func (c *Conn) Read([]byte) (int, error)  { return 0, api.ErrNotSupported }
func (c *Conn) Write([]byte) (int, error) { return 0, api.ErrNotSupported }
func (c *Conn) Close() error              { return nil }
func (c *Conn) RemoteAddr() string        { return c.peer }
func (c *Conn) Fd() int                   { return -1 }
