// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral readiness-wait types.

package reactor

// Kind tags a watched descriptor so the server loop knows how to drain it
// once it turns ready.
type Kind uint8

const (
	// KindListener marks a listening socket; readiness means pending accepts.
	KindListener Kind = iota
	// KindConn marks an accepted connection; readiness means readable bytes.
	KindConn
	// KindWake marks the internal wake pipe used to interrupt the wait.
	KindWake
)

// PollFD is one descriptor in the watched set.
type PollFD struct {
	FD   int
	Kind Kind
}

// Ready is one descriptor reported ready by Wait. Hup is set when the OS
// flagged the descriptor with an error or hangup condition; the caller
// treats it like a readable descriptor whose read will fail.
type Ready struct {
	FD   int
	Kind Kind
	Hup  bool
}

// Waiter blocks on the union of watched descriptors. A Waiter holds no
// state of its own; the watched set is rebuilt by the caller every tick.
type Waiter struct{}
