// File: server/run.go
// Package server implements the reactor loop: readiness wait, accept drain,
// read drain, bus dispatch, and connection pruning.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"context"

	"go.uber.org/zap"

	"github.com/plugbus/plugbus/reactor"
	"github.com/plugbus/plugbus/transport"
)

// Run drives the reactor loop until ctx is canceled. The readiness wait is
// the only suspension point; everything dispatched from a tick runs to
// completion before the next wait. Returns the context error on shutdown
// or the first unrecoverable wait error.
func (c *Core) Run(ctx context.Context) error {
	// The wake pipe turns cancellation into readiness, so a cancel during
	// a timeout-less wait is still prompt.
	stop := context.AfterFunc(ctx, c.waker.Wake)
	defer stop()

	c.log.Info("reactor loop started",
		zap.Int("sockets", c.sockets.Len()))

	for {
		if err := ctx.Err(); err != nil {
			c.log.Info("reactor loop stopped")
			return err
		}

		set, listeners := c.buildSet()
		ready, err := c.waiter.Wait(set)
		if err != nil {
			return err
		}

		for _, rd := range ready {
			switch rd.Kind {
			case reactor.KindWake:
				c.waker.Drain()
			case reactor.KindListener:
				c.drainAccepts(listeners[rd.FD])
			case reactor.KindConn:
				c.readConn(c.conns.Get(rd.FD))
			}
		}

		// Register this tick's accepts and prune its casualties only
		// after the whole ready set is drained, so the watched set is
		// stable within a tick.
		for c.accepted.Length() > 0 {
			c.conns.Add(c.accepted.Remove().(*transport.Conn))
		}
		for c.dead.Length() > 0 {
			c.conns.Remove(c.dead.Remove().(*transport.Conn))
		}
	}
}

// buildSet assembles the watched descriptor union for one tick: the wake
// pipe, every listening socket, every live connection. The listener map
// routes ready listener descriptors back to their sockets.
func (c *Core) buildSet() ([]reactor.PollFD, map[int]*transport.Socket) {
	set := make([]reactor.PollFD, 0, 1+c.sockets.Len()+c.conns.Len())
	set = append(set, reactor.PollFD{FD: c.waker.Fd(), Kind: reactor.KindWake})

	listeners := make(map[int]*transport.Socket, c.sockets.Len())
	c.sockets.Each(func(s *transport.Socket) {
		listeners[s.Fd()] = s
		set = append(set, reactor.PollFD{FD: s.Fd(), Kind: reactor.KindListener})
	})
	c.conns.Each(func(cn *transport.Conn) {
		set = append(set, reactor.PollFD{FD: cn.Fd(), Kind: reactor.KindConn})
	})
	return set, listeners
}

// drainAccepts accepts until the socket would block. Accept errors beyond
// would-block are logged and swallowed; they affect one pending peer, not
// the listener.
func (c *Core) drainAccepts(s *transport.Socket) {
	if s == nil {
		return
	}
	for {
		conn, err := s.Accept()
		if err != nil {
			c.log.Warn("accept failed", zap.Error(err))
			return
		}
		if conn == nil {
			return
		}
		c.log.Debug("peer accepted", zap.String("peer", conn.RemoteAddr()))
		c.accepted.Add(conn)
	}
}

// readConn reads one ready connection and forwards the bytes to the bus.
// Zero-length reads are would-block hints and ignored; EOF and read errors
// stage the connection for pruning.
func (c *Core) readConn(cn *transport.Conn) {
	if cn == nil {
		return
	}
	n, err := cn.Read(c.readBuf)
	if err != nil {
		c.log.Debug("connection closed",
			zap.String("peer", cn.RemoteAddr()), zap.Error(err))
		c.dead.Add(cn)
		return
	}
	if n == 0 {
		return
	}
	c.bus.DispatchIncoming(cn, c.readBuf[:n])
}
