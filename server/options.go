// File: server/options.go
// Package server defines functional options for the Core.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import "go.uber.org/zap"

// Option customizes core initialization.
type Option func(*Core)

// WithLogger sets the structured logger used by the core, the bus, and the
// registries. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(c *Core) {
		c.log = log
	}
}

// WithReadBufferSize overrides the per-tick read buffer size.
func WithReadBufferSize(n int) Option {
	return func(c *Core) {
		if n > 0 {
			c.cfg.ReadBufferSize = n
		}
	}
}

// WithAcceptBacklog overrides the listen(2) backlog for new sockets.
func WithAcceptBacklog(n int) Option {
	return func(c *Core) {
		if n > 0 {
			c.cfg.AcceptBacklog = n
		}
	}
}
