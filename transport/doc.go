// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package transport owns the socket layer: listening sockets bound to
// validated IPv4 endpoints, accepted peer connections, and the registries
// that hold exclusive ownership of their descriptors. A descriptor is
// released exactly once, at the point its owning entry is erased.
package transport
