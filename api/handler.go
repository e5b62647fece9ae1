// File: api/handler.go
// Package api defines the callback types dispatched by the event bus.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// CommandHandler is the single handler attached to a command event. It
// receives the command token, the connection the data arrived on, and the
// remainder of the input after the token.
type CommandHandler func(name string, conn Conn, remainder string)

// PreprocessorFunc gates dispatch of a command event. It receives the raw
// incoming bytes and returns false to veto the dispatch.
type PreprocessorFunc func(raw []byte) bool

// SubscriberFunc is invoked for each triggered generic event with the
// opaque payload passed to TriggerEvent.
type SubscriberFunc func(data any)
