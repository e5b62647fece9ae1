// File: api/interfaces.go
// Package api defines the core interfaces exposed to modules.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Conn is the view of an accepted peer connection exposed to handlers and
// modules. The connection registry remains the sole owner of the underlying
// descriptor; Close marks the connection for teardown and is idempotent.
type Conn interface {
	// Write sends bytes to the peer.
	Write(p []byte) (int, error)

	// Close releases the connection. The descriptor is released exactly
	// once regardless of how many times Close is called.
	Close() error

	// RemoteAddr returns the peer address in "ip:port" form.
	RemoteAddr() string

	// Fd returns the underlying descriptor for readiness watching.
	Fd() int
}

// Module is the object a loadable unit hands back from its entry point.
type Module interface {
	// Name reports the module identity. It must match the basename of the
	// unit it was loaded from or the load is aborted.
	Name() string

	// IsInstantiated reports whether the module initialized successfully.
	// Returning false aborts the load and unwinds any registrations the
	// module made during its entry point.
	IsInstantiated() bool
}

// Bus is the full event surface reachable from module code: named command
// events with a single owning handler and veto preprocessors, plus a
// priority-ordered generic publish/subscribe channel.
//
// All Bus operations must be called from the reactor goroutine; the bus
// performs no internal locking. See the concurrency contract in the server
// package.
type Bus interface {
	// CreateEvent registers a command event under a globally unique name.
	// Returns ErrAlreadyExists, with no mutation, if the name is taken.
	CreateEvent(name, ownerModule string, handler CommandHandler) error

	// DestroyEvent removes a command event, its handler, and all of its
	// preprocessors atomically. Returns ErrNotFound for unknown names.
	DestroyEvent(name string) error

	// RegisterPreprocessor attaches a veto predicate to an existing
	// command event. Lower priority runs earlier; ties run in
	// registration order. Returns ErrNotFound if the event is missing.
	RegisterPreprocessor(name, ownerModule string, pred PreprocessorFunc, priority int) error

	// UnregisterPreprocessor removes the named module's preprocessors
	// from an event. Returns ErrNotFound if none matched.
	UnregisterPreprocessor(name, ownerModule string) error

	// RegisterForEvent adds a generic subscription. A module may hold at
	// most one subscription per event name; a duplicate pair is rejected
	// with ErrAlreadyRegistered. The event name need not be declared.
	RegisterForEvent(name, ownerModule string, cb SubscriberFunc, priority int) error

	// UnregisterForEvent removes the module's subscription for the name.
	UnregisterForEvent(name, ownerModule string) error

	// TriggerEvent runs every subscription for name in ascending
	// priority, registration-stable order and returns how many ran.
	TriggerEvent(name string, data any) int

	// UnregisterModule removes every command event, preprocessor, and
	// subscription owned by the module. Mandatory before the module's
	// code handle is released.
	UnregisterModule(ownerModule string)
}
