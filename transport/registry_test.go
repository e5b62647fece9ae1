//go:build linux
// +build linux

// File: transport/registry_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugbus/plugbus/api"
)

func TestNewSocketDuplicateKey(t *testing.T) {
	r := NewSocketRegistry(nil, 16)
	defer r.CloseAll()

	require.NoError(t, r.NewSocket("127.0.0.1", 0))
	err := r.NewSocket("127.0.0.1", 0)
	assert.ErrorIs(t, err, api.ErrDuplicateKey)
	assert.Equal(t, 1, r.Len())
}

func TestNewSocketNormalizedKeyCollision(t *testing.T) {
	r := NewSocketRegistry(nil, 16)
	defer r.CloseAll()

	require.NoError(t, r.NewSocket("127.000.000.001", 0))
	// Padded and canonical spellings must resolve to the same key.
	assert.ErrorIs(t, r.NewSocket("127.0.0.1", 0), api.ErrDuplicateKey)
}

func TestNewSocketInvalidAddress(t *testing.T) {
	r := NewSocketRegistry(nil, 16)
	defer r.CloseAll()

	assert.ErrorIs(t, r.NewSocket("not.an.ip", 9000), api.ErrInvalidAddress)
	assert.ErrorIs(t, r.NewSocket("::1", 9000), api.ErrInvalidAddress)
	assert.Equal(t, 0, r.Len())
}

func TestDestroySocket(t *testing.T) {
	r := NewSocketRegistry(nil, 16)
	defer r.CloseAll()

	require.NoError(t, r.NewSocket("127.0.0.1", 0))
	require.NoError(t, r.DestroySocket("127.0.0.1", 0))
	assert.Equal(t, 0, r.Len())

	assert.ErrorIs(t, r.DestroySocket("127.0.0.1", 0), api.ErrNotFound)
	assert.ErrorIs(t, r.DestroySocket("bogus", 0), api.ErrInvalidAddress)
}

func TestAcceptAndRead(t *testing.T) {
	r := NewSocketRegistry(nil, 16)
	defer r.CloseAll()
	require.NoError(t, r.NewSocket("127.0.0.1", 0))

	var sock *Socket
	r.Each(func(s *Socket) { sock = s })
	require.NotNil(t, sock)
	assert.Equal(t, "127.0.0.1", sock.Addr())
	assert.NotZero(t, sock.Port())

	// Accept with nothing pending must be a swallowed would-block.
	c, err := sock.Accept()
	require.NoError(t, err)
	assert.Nil(t, c)

	peer, err := net.Dial("tcp", sock.AddrPort())
	require.NoError(t, err)
	defer peer.Close()

	// The listener is non-blocking; give the kernel a moment to finish
	// the handshake before draining the accept queue.
	deadline := time.Now().Add(2 * time.Second)
	for c == nil && time.Now().Before(deadline) {
		c, err = sock.Accept()
		require.NoError(t, err)
		if c == nil {
			time.Sleep(5 * time.Millisecond)
		}
	}
	require.NotNil(t, c)

	conns := NewConnRegistry(nil)
	conns.Add(c)
	assert.Equal(t, 1, conns.Len())
	assert.Same(t, c, conns.Get(c.Fd()))

	_, err = peer.Write([]byte("NICK gopher\n"))
	require.NoError(t, err)

	buf := make([]byte, 256)
	n := 0
	for n == 0 && time.Now().Before(deadline) {
		n, err = c.Read(buf)
		if err != nil {
			time.Sleep(5 * time.Millisecond)
			n, err = 0, nil
		}
	}
	assert.Equal(t, "NICK gopher\n", string(buf[:n]))

	_, err = c.Write([]byte("ok"))
	require.NoError(t, err)
	reply := make([]byte, 2)
	_, err = peer.Read(reply)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(reply))

	conns.Remove(c)
	assert.Equal(t, 0, conns.Len())
	// Double remove and double close are harmless.
	conns.Remove(c)
	assert.NoError(t, c.Close())
}
