// File: modmgr/manager.go
// Package modmgr module load/unload orchestration.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package modmgr

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/plugbus/plugbus/api"
)

// Manager holds every loaded module, keyed by identity. Like the bus it is
// single-goroutine by contract.
type Manager struct {
	log     *zap.Logger
	bus     api.Bus
	resolve Resolver
	modules map[string]*LoadedModule
}

// ManagerOption customizes manager initialization.
type ManagerOption func(*Manager)

// WithLogger sets the structured logger. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) ManagerOption {
	return func(m *Manager) { m.log = log }
}

// WithResolver replaces the loadable-unit resolver.
func WithResolver(r Resolver) ManagerOption {
	return func(m *Manager) { m.resolve = r }
}

// NewManager creates a manager bound to the bus it must tear modules out
// of. The default resolver loads Go plugins via PluginResolver.
func NewManager(bus api.Bus, opts ...ManagerOption) *Manager {
	m := &Manager{
		log:     zap.NewNop(),
		bus:     bus,
		resolve: PluginResolver,
		modules: make(map[string]*LoadedModule),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Load resolves the unit at path, obtains its module object, verifies its
// identity, and registers it. Every failure path leaves the bus with no
// trace of the attempted module: registrations a module made during its
// entry point are rolled back before the error is reported.
func (m *Manager) Load(path string) error {
	name := Basename(path)
	if _, ok := m.modules[name]; ok {
		return fmt.Errorf("%w: %s", api.ErrModuleLoaded, name)
	}

	unit, err := m.resolve(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	mod := unit.Entry(m.bus)
	if mod == nil || mod.Name() != name {
		// The entry point may have registered under its reported name
		// before the mismatch was detectable; unwind both identities.
		if mod != nil {
			m.bus.UnregisterModule(mod.Name())
		}
		m.bus.UnregisterModule(name)
		reported := "<nil>"
		if mod != nil {
			reported = mod.Name()
		}
		return fmt.Errorf("%w: unit %q reported %q", api.ErrIdentity, name, reported)
	}

	m.modules[name] = &LoadedModule{Module: mod, handle: unit.Handle}

	if !mod.IsInstantiated() {
		_ = m.Unload(name)
		return fmt.Errorf("%w: %s", api.ErrRefused, name)
	}

	m.log.Info("module loaded", zap.String("module", name))
	return nil
}

// Unload tears the module out of the bus and releases the ownership unit.
// The cascade teardown runs strictly before the module object and code
// handle are dropped.
func (m *Manager) Unload(name string) error {
	lm, ok := m.modules[name]
	if !ok {
		return fmt.Errorf("%w: module %s", api.ErrNotFound, name)
	}
	m.bus.UnregisterModule(name)
	lm.Module = nil
	lm.handle = nil
	delete(m.modules, name)
	m.log.Info("module unloaded", zap.String("module", name))
	return nil
}

// Reload unloads the module named by path's basename, then loads path again.
func (m *Manager) Reload(path string) error {
	if err := m.Unload(Basename(path)); err != nil {
		return err
	}
	return m.Load(path)
}

// Get returns the loaded module object by name, or nil.
func (m *Manager) Get(name string) api.Module {
	if lm, ok := m.modules[name]; ok {
		return lm.Module
	}
	return nil
}

// Len reports the number of loaded modules.
func (m *Manager) Len() int { return len(m.modules) }

// UnloadAll unloads every module; used on shutdown.
func (m *Manager) UnloadAll() error {
	var err error
	for name := range m.modules {
		err = multierr.Append(err, m.Unload(name))
	}
	return err
}
