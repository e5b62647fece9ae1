// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package modmgr manages loadable modules: resolving a path to an entry
// point, checking module identity against the unit basename, and enforcing
// the teardown order that keeps the event bus free of references into
// unloaded code. A module and its code handle form one ownership unit;
// the bus cascade teardown always runs before either is released.
package modmgr
