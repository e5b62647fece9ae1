package server

import (
	"go.uber.org/zap"

	"github.com/eapache/queue"
	"github.com/plugbus/plugbus/bus"
	"github.com/plugbus/plugbus/reactor"
	"github.com/plugbus/plugbus/transport"
)

// Config holds the core's tunables.
type Config struct {
	ReadBufferSize int // per-tick read buffer, bytes
	AcceptBacklog  int // listen(2) backlog for every socket
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ReadBufferSize: 4096,
		AcceptBacklog:  128,
	}
}

// Core bundles the event bus, the socket and connection registries, and the
// readiness waiter behind a single reactor loop. Registries are passed by
// reference into the loop rather than looked up ambiently, so the pieces
// stay testable in isolation.
type Core struct {
	cfg     *Config
	log     *zap.Logger
	bus     *bus.Bus
	sockets *transport.SocketRegistry
	conns   *transport.ConnRegistry
	waiter  reactor.Waiter
	waker   *reactor.Waker

	// Per-tick staging: connections accepted this tick await registration,
	// dead connections await pruning after the drain pass.
	accepted *queue.Queue
	dead     *queue.Queue

	readBuf []byte
}
