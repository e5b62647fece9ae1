// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values returned across the core/module boundary.

package api

import "errors"

// Event bus and registry outcomes. These are returned to the caller as
// explicit values, never thrown across the reactor loop boundary.
var (
	ErrAlreadyExists     = errors.New("event already exists")
	ErrNotFound          = errors.New("no such entry")
	ErrAlreadyRegistered = errors.New("subscription already registered")
	ErrInvalidAddress    = errors.New("invalid IPv4 address")
	ErrBind              = errors.New("bind failed")
	ErrDuplicateKey      = errors.New("socket already bound for key")
	ErrNoDescriptors     = errors.New("empty descriptor set")
	ErrNotSupported      = errors.New("operation not supported on this platform")
)

// Module loader outcomes.
var (
	ErrModuleLoaded = errors.New("module already loaded")
	ErrEntryPoint   = errors.New("module entry point missing or malformed")
	ErrIdentity     = errors.New("module identity mismatch")
	ErrRefused      = errors.New("module refused instantiation")
)
