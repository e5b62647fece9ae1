// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package bus implements the plugbus event bus: named command events with a
// single owning handler gated by veto-capable preprocessors, and a generic
// multi-subscriber notification channel. Every registration carries an
// owning-module tag used for cascade teardown when a module is unloaded.
package bus
