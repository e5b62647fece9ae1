//go:build linux
// +build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor - Linux poll(2) implementation of the readiness wait.

package reactor

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/plugbus/plugbus/api"
)

// Wait blocks with no timeout until at least one watched descriptor is
// readable, then returns the ready subset. EINTR retries the wait. An empty
// watched set is a programming error and returns api.ErrNoDescriptors
// instead of blocking forever.
func (w *Waiter) Wait(set []PollFD) ([]Ready, error) {
	if len(set) == 0 {
		return nil, api.ErrNoDescriptors
	}

	fds := make([]unix.PollFd, len(set))
	for i, p := range set {
		fds[i] = unix.PollFd{Fd: int32(p.FD), Events: unix.POLLIN}
	}

	for {
		n, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("poll: %w", err)
		}
		if n == 0 {
			// No timeout was armed; treat a spurious zero as a retry.
			continue
		}
		break
	}

	ready := make([]Ready, 0, len(set))
	for i, fd := range fds {
		if fd.Revents == 0 {
			continue
		}
		ready = append(ready, Ready{
			FD:   set[i].FD,
			Kind: set[i].Kind,
			Hup:  fd.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0,
		})
	}
	return ready, nil
}
