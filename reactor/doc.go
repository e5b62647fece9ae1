// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the typed readiness-wait abstraction used by the
// server loop: it takes the set of watched descriptors built each tick and
// blocks until at least one is ready to read. Linux is the supported
// platform; other platforms get a stub that reports ErrNotSupported.
package reactor
