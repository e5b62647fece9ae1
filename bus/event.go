// File: bus/event.go
// Package bus internal registration records.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package bus

import "github.com/plugbus/plugbus/api"

// commandEvent is one named command with exactly one handler and an ordered
// preprocessor chain.
type commandEvent struct {
	name     string
	owner    string // empty means core-owned
	handler  api.CommandHandler
	preprocs []*preprocessor
}

// preprocessor is a veto predicate attached to a commandEvent. seq breaks
// priority ties in registration order.
type preprocessor struct {
	owner    string
	priority int
	seq      uint64
	pred     api.PreprocessorFunc
}

// subscription is one generic-bus listener. At most one per (event, owner).
type subscription struct {
	owner    string
	priority int
	seq      uint64
	cb       api.SubscriberFunc
}
