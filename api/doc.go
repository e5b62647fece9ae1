// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api defines the capability surface shared between the plugbus core
// and dynamically loaded modules: callback types, the connection and module
// interfaces, the event bus contract, and the sentinel errors returned across
// that boundary. Modules compile against this package only; no other core
// state is reachable from module code.
package api
