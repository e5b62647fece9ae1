// File: modmgr/module.go
// Package modmgr loadable-unit types.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package modmgr

import (
	"path/filepath"
	"strings"

	"github.com/plugbus/plugbus/api"
)

// EntryPoint is the function a loadable unit exports to hand back its
// module object. The host passes the event bus in; it is the only core
// state a module may hold.
type EntryPoint func(bus api.Bus) api.Module

// Unit is a resolved loadable unit: the entry point plus whatever handle
// must stay alive as long as the module object does (for the stdlib plugin
// resolver, the *plugin.Plugin).
type Unit struct {
	Entry  EntryPoint
	Handle any
}

// Resolver turns a module path into a Unit. The default is PluginResolver;
// tests and embedders supply in-process resolvers instead.
type Resolver func(path string) (*Unit, error)

// LoadedModule ties a module object to its code handle so both live and
// die together. Teardown order is enforced by the manager: bus unregister,
// then the module object, then the handle.
type LoadedModule struct {
	Module api.Module
	handle any
}

// Basename derives the module identity from a unit path: the path
// basename with the ".so" extension stripped.
func Basename(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".so")
}
