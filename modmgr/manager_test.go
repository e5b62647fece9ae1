// File: modmgr/manager_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package modmgr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugbus/plugbus/api"
	"github.com/plugbus/plugbus/bus"
)

// fakeModule implements api.Module and optionally registers bus entries
// during its entry point, the way a real module's Load function would.
type fakeModule struct {
	name string
	ok   bool
}

func (f *fakeModule) Name() string         { return f.name }
func (f *fakeModule) IsInstantiated() bool { return f.ok }

// resolverFor builds a Resolver returning a module that registers a command
// event under its own name during entry.
func resolverFor(name string, ok bool) Resolver {
	return func(string) (*Unit, error) {
		return &Unit{
			Entry: func(b api.Bus) api.Module {
				mod := &fakeModule{name: name, ok: ok}
				_ = b.CreateEvent("CMD_"+name, name,
					func(string, api.Conn, string) {})
				return mod
			},
			Handle: struct{}{},
		}, nil
	}
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "chat", Basename("/opt/plugbus/modules/chat.so"))
	assert.Equal(t, "chat", Basename("chat.so"))
	assert.Equal(t, "chat", Basename("chat"))
}

func TestLoadAndUnload(t *testing.T) {
	b := bus.New(nil)
	m := NewManager(b, WithResolver(resolverFor("chat", true)))

	require.NoError(t, m.Load("/modules/chat.so"))
	assert.Equal(t, 1, m.Len())
	assert.NotNil(t, m.Get("chat"))
	assert.True(t, b.DispatchIncoming(nil, []byte("CMD_chat")))

	require.NoError(t, m.Unload("chat"))
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Get("chat"))
	// Cascade teardown must have stripped the module's command event.
	assert.False(t, b.DispatchIncoming(nil, []byte("CMD_chat")))
}

func TestLoadDuplicate(t *testing.T) {
	b := bus.New(nil)
	m := NewManager(b, WithResolver(resolverFor("chat", true)))

	require.NoError(t, m.Load("chat.so"))
	assert.ErrorIs(t, m.Load("chat.so"), api.ErrModuleLoaded)
	assert.Equal(t, 1, m.Len())
}

func TestLoadIdentityMismatchRollsBack(t *testing.T) {
	b := bus.New(nil)
	// Unit basename says "chat", module reports "imposter".
	m := NewManager(b, WithResolver(resolverFor("imposter", true)))

	err := m.Load("/modules/chat.so")
	assert.ErrorIs(t, err, api.ErrIdentity)
	assert.Equal(t, 0, m.Len())
	// Whatever the entry point registered is gone.
	assert.False(t, b.DispatchIncoming(nil, []byte("CMD_imposter")))
}

func TestLoadNilModule(t *testing.T) {
	b := bus.New(nil)
	m := NewManager(b, WithResolver(func(string) (*Unit, error) {
		return &Unit{Entry: func(api.Bus) api.Module { return nil }}, nil
	}))
	assert.ErrorIs(t, m.Load("empty.so"), api.ErrIdentity)
	assert.Equal(t, 0, m.Len())
}

func TestLoadRefusedInstantiationRollsBack(t *testing.T) {
	b := bus.New(nil)
	m := NewManager(b, WithResolver(resolverFor("chat", false)))

	err := m.Load("chat.so")
	assert.ErrorIs(t, err, api.ErrRefused)
	assert.Equal(t, 0, m.Len())
	assert.False(t, b.DispatchIncoming(nil, []byte("CMD_chat")))
}

func TestLoadResolverError(t *testing.T) {
	b := bus.New(nil)
	boom := errors.New("no such file")
	m := NewManager(b, WithResolver(func(string) (*Unit, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, m.Load("ghost.so"), boom)
}

func TestReload(t *testing.T) {
	b := bus.New(nil)
	loads := 0
	m := NewManager(b, WithResolver(func(string) (*Unit, error) {
		return &Unit{Entry: func(api.Bus) api.Module {
			loads++
			return &fakeModule{name: "chat", ok: true}
		}}, nil
	}))

	require.NoError(t, m.Load("chat.so"))
	require.NoError(t, m.Reload("chat.so"))
	assert.Equal(t, 2, loads)
	assert.Equal(t, 1, m.Len())

	// Reloading something never loaded fails up front.
	assert.ErrorIs(t, m.Reload("ghost.so"), api.ErrNotFound)
}

func TestUnloadAll(t *testing.T) {
	b := bus.New(nil)
	m := NewManager(b, WithResolver(func(path string) (*Unit, error) {
		name := Basename(path)
		return &Unit{Entry: func(api.Bus) api.Module {
			return &fakeModule{name: name, ok: true}
		}}, nil
	}))
	for _, name := range []string{"chat", "auth"} {
		require.NoError(t, m.Load(name+".so"))
	}
	require.NoError(t, m.UnloadAll())
	assert.Equal(t, 0, m.Len())
}
