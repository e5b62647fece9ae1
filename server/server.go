// File: server/server.go
// Package server constructs and tears down the Core.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/eapache/queue"
	"github.com/plugbus/plugbus/bus"
	"github.com/plugbus/plugbus/reactor"
	"github.com/plugbus/plugbus/transport"
)

// New builds a Core with explicit registry and bus state. Options apply
// before the bus and registries are created so they observe the final
// logger and config.
func New(opts ...Option) (*Core, error) {
	c := &Core{
		cfg:      DefaultConfig(),
		log:      zap.NewNop(),
		accepted: queue.New(),
		dead:     queue.New(),
	}
	for _, o := range opts {
		o(c)
	}

	waker, err := reactor.NewWaker()
	if err != nil {
		return nil, err
	}
	c.waker = waker
	c.bus = bus.New(c.log)
	c.sockets = transport.NewSocketRegistry(c.log, c.cfg.AcceptBacklog)
	c.conns = transport.NewConnRegistry(c.log)
	c.readBuf = make([]byte, c.cfg.ReadBufferSize)
	return c, nil
}

// Bus exposes the event bus. Before Run it may be used freely; afterwards
// only from the loop goroutine (handlers and module callbacks).
func (c *Core) Bus() *bus.Bus { return c.bus }

// Sockets exposes the listening-socket registry under the same contract.
func (c *Core) Sockets() *transport.SocketRegistry { return c.sockets }

// Conns exposes the connection registry under the same contract.
func (c *Core) Conns() *transport.ConnRegistry { return c.conns }

// Close releases every listening socket, every connection, and the wake
// pipe. Call after Run has returned.
func (c *Core) Close() error {
	err := multierr.Combine(
		c.sockets.CloseAll(),
		c.conns.CloseAll(),
		c.waker.Close(),
	)
	c.log.Info("core closed")
	return err
}
