// File: transport/registry.go
// Package transport socket and connection registries.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/plugbus/plugbus/api"
	"github.com/plugbus/plugbus/internal/normalize"
)

// SocketRegistry owns the set of listening sockets, keyed by the normalized
// "addr:port" form. Exactly one socket may exist per key; a live socket is
// never replaced.
type SocketRegistry struct {
	log     *zap.Logger
	backlog int
	sockets map[string]*Socket
}

// NewSocketRegistry creates an empty registry. backlog is passed to
// listen(2) for every socket the registry creates.
func NewSocketRegistry(log *zap.Logger, backlog int) *SocketRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &SocketRegistry{
		log:     log,
		backlog: backlog,
		sockets: make(map[string]*Socket),
	}
}

// NewSocket validates addr as a dotted-decimal IPv4 literal, normalizes it,
// binds, and begins listening. Every failure path leaves the registry
// unchanged: the duplicate check runs before the bind so a rejected call
// never creates and discards a descriptor behind an existing one.
func (r *SocketRegistry) NewSocket(addr string, port int) error {
	canonical, ok := normalize.IPv4(addr)
	if !ok {
		return fmt.Errorf("%w: %q", api.ErrInvalidAddress, addr)
	}
	key := normalize.Key(canonical, port)
	if _, exists := r.sockets[key]; exists {
		return fmt.Errorf("%w: %s", api.ErrDuplicateKey, key)
	}
	s, err := listen(canonical, port, r.backlog)
	if err != nil {
		return err
	}
	r.sockets[key] = s
	r.log.Info("listening socket bound",
		zap.String("addr", canonical), zap.Int("port", s.Port()))
	return nil
}

// DestroySocket closes and removes the socket for the normalized key.
func (r *SocketRegistry) DestroySocket(addr string, port int) error {
	canonical, ok := normalize.IPv4(addr)
	if !ok {
		return fmt.Errorf("%w: %q", api.ErrInvalidAddress, addr)
	}
	key := normalize.Key(canonical, port)
	s, exists := r.sockets[key]
	if !exists {
		return fmt.Errorf("%w: %s", api.ErrNotFound, key)
	}
	delete(r.sockets, key)
	err := s.Close()
	r.log.Info("listening socket destroyed", zap.String("key", key))
	return err
}

// Each visits every listening socket; used to build the watched set.
func (r *SocketRegistry) Each(fn func(*Socket)) {
	for _, s := range r.sockets {
		fn(s)
	}
}

// Len reports the number of live listening sockets.
func (r *SocketRegistry) Len() int { return len(r.sockets) }

// CloseAll releases every listening socket; used on shutdown.
func (r *SocketRegistry) CloseAll() error {
	var err error
	for key, s := range r.sockets {
		err = multierr.Append(err, s.Close())
		delete(r.sockets, key)
	}
	return err
}

// ConnRegistry owns every live accepted connection, keyed by descriptor.
// The server loop borrows connections per tick; the registry is the sole
// owner of their lifetime after acceptance.
type ConnRegistry struct {
	log   *zap.Logger
	conns map[int]*Conn
}

// NewConnRegistry creates an empty connection registry.
func NewConnRegistry(log *zap.Logger) *ConnRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConnRegistry{log: log, conns: make(map[int]*Conn)}
}

// Add takes ownership of an accepted connection.
func (r *ConnRegistry) Add(c *Conn) {
	r.conns[c.Fd()] = c
	r.log.Debug("connection added",
		zap.Int("fd", c.Fd()), zap.String("peer", c.RemoteAddr()))
}

// Get returns the live connection for a descriptor, or nil.
func (r *ConnRegistry) Get(fd int) *Conn { return r.conns[fd] }

// Remove closes the connection and erases its entry. The descriptor is
// released here and nowhere else.
func (r *ConnRegistry) Remove(c *Conn) {
	if _, ok := r.conns[c.Fd()]; !ok {
		return
	}
	delete(r.conns, c.Fd())
	_ = c.Close()
	r.log.Debug("connection removed",
		zap.Int("fd", c.Fd()), zap.String("peer", c.RemoteAddr()))
}

// Each visits every live connection; used to build the watched set.
func (r *ConnRegistry) Each(fn func(*Conn)) {
	for _, c := range r.conns {
		fn(c)
	}
}

// Len reports the number of live connections.
func (r *ConnRegistry) Len() int { return len(r.conns) }

// CloseAll releases every connection; used on shutdown.
func (r *ConnRegistry) CloseAll() error {
	var err error
	for fd, c := range r.conns {
		err = multierr.Append(err, c.Close())
		delete(r.conns, fd)
	}
	return err
}
