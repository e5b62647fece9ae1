//go:build !linux
// +build !linux

// File: reactor/waker_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import "github.com/plugbus/plugbus/api"

// Waker is unavailable outside Linux.
type Waker struct{}

func NewWaker() (*Waker, error) { return nil, api.ErrNotSupported }

func (k *Waker) Fd() int      { return -1 }
func (k *Waker) Wake()        {}
func (k *Waker) Drain()       {}
func (k *Waker) Close() error { return nil }
