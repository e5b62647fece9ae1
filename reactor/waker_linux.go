//go:build linux
// +build linux

// File: reactor/waker_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Self-pipe used to interrupt a timeout-less readiness wait from another
// goroutine (shutdown is the only cross-goroutine signal in the system).

package reactor

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Waker is a non-blocking self-pipe. Its read end joins the watched set
// with KindWake; Wake makes the next (or current) Wait return.
type Waker struct {
	r, w int
}

// NewWaker creates the pipe pair.
func NewWaker() (*Waker, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, fmt.Errorf("wake pipe: %w", err)
	}
	return &Waker{r: p[0], w: p[1]}, nil
}

// Fd returns the read end to include in the watched set.
func (k *Waker) Fd() int { return k.r }

// Wake interrupts the wait. Safe to call from any goroutine; a full pipe
// already guarantees a pending wakeup, so EAGAIN is ignored.
func (k *Waker) Wake() {
	_, _ = unix.Write(k.w, []byte{0})
}

// Drain consumes pending wakeups after the read end turned ready.
func (k *Waker) Drain() {
	var buf [16]byte
	for {
		n, err := unix.Read(k.r, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// Close releases both pipe ends.
func (k *Waker) Close() error {
	err1 := unix.Close(k.r)
	err2 := unix.Close(k.w)
	if err1 != nil {
		return err1
	}
	return err2
}
