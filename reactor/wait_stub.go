//go:build !linux
// +build !linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor - stub for unsupported platforms.

package reactor

import "github.com/plugbus/plugbus/api"

// Wait is unavailable outside Linux.
func (w *Waiter) Wait(set []PollFD) ([]Ready, error) {
	return nil, api.ErrNotSupported
}
