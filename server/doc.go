// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package server drives the plugbus core: a single-threaded cooperative
// reactor loop over the union of listening sockets and accepted
// connections. Each tick waits for readiness, drains pending accepts,
// reads ready connections, feeds the bytes to the event bus, and prunes
// dead connections before waiting again.
//
// Concurrency contract: the loop is the only control flow. Handlers,
// preprocessors, and subscribers run to completion on the loop goroutine
// before the next readiness wait; the wait itself is the only suspension
// point. The bus and both registries must therefore only be touched from
// that goroutine once Run has started.
package server
