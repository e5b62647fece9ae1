// File: modmgr/resolver_plugin.go
// Package modmgr default resolver over the Go plugin runtime.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package modmgr

import (
	"fmt"
	"plugin"

	"github.com/plugbus/plugbus/api"
)

// PluginResolver opens a Go plugin (buildmode=plugin shared object) and
// extracts its exported Load entry point, which must be a
// func(api.Bus) api.Module. The *plugin.Plugin is returned as the unit
// handle; the Go runtime never unmaps plugin code, so holding the handle
// inside the LoadedModule is sufficient to satisfy the lifetime contract.
func PluginResolver(path string) (*Unit, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open unit: %w", err)
	}
	sym, err := p.Lookup("Load")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrEntryPoint, err)
	}
	entry, ok := sym.(func(api.Bus) api.Module)
	if !ok {
		return nil, fmt.Errorf("%w: Load has type %T", api.ErrEntryPoint, sym)
	}
	return &Unit{Entry: EntryPoint(entry), Handle: p}, nil
}
