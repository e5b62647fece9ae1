//go:build linux
// +build linux

// File: reactor/wait_linux_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/plugbus/plugbus/api"
)

func TestWaitEmptySet(t *testing.T) {
	var w Waiter
	_, err := w.Wait(nil)
	assert.ErrorIs(t, err, api.ErrNoDescriptors)
}

func TestWaitReportsReadable(t *testing.T) {
	pair, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(pair[0])
	defer unix.Close(pair[1])

	_, err = unix.Write(pair[1], []byte("x"))
	require.NoError(t, err)

	var w Waiter
	ready, err := w.Wait([]PollFD{{FD: pair[0], Kind: KindConn}})
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, pair[0], ready[0].FD)
	assert.Equal(t, KindConn, ready[0].Kind)
	assert.False(t, ready[0].Hup)
}

func TestWaitReportsOnlyReadySubset(t *testing.T) {
	a, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	b, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer func() {
		for _, fd := range []int{a[0], a[1], b[0], b[1]} {
			unix.Close(fd)
		}
	}()

	_, err = unix.Write(a[1], []byte("x"))
	require.NoError(t, err)

	var w Waiter
	ready, err := w.Wait([]PollFD{
		{FD: a[0], Kind: KindConn},
		{FD: b[0], Kind: KindConn},
	})
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, a[0], ready[0].FD)
}

func TestWaitFlagsHangup(t *testing.T) {
	pair, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(pair[0])
	require.NoError(t, unix.Close(pair[1]))

	var w Waiter
	ready, err := w.Wait([]PollFD{{FD: pair[0], Kind: KindConn}})
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.True(t, ready[0].Hup)
}
