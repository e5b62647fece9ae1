// File: internal/normalize/normalizer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unified address normalization routines for socket registry keys.
// Ensures all bind and destroy call sites validate listen addresses the same
// way, so a socket bound with a padded literal ("127.000.000.001") and one
// destroyed with the canonical form resolve to the same registry key.
// Should be used by ALL call sites working with address/port parameters.

package normalize

import (
	"fmt"
	"strings"
)

// IPv4 validates a dotted-decimal IPv4 literal and returns its canonical
// form. Exactly four decimal octets in [0,255] are accepted; leading zeros
// are tolerated and stripped in the result. Anything else, including IPv6
// literals and host names, reports ok == false.
func IPv4(addr string) (canonical string, ok bool) {
	parts := strings.Split(addr, ".")
	if len(parts) != 4 {
		return "", false
	}
	var octets [4]int
	for i, p := range parts {
		if p == "" || len(p) > 3 {
			return "", false
		}
		n := 0
		for _, c := range p {
			if c < '0' || c > '9' {
				return "", false
			}
			n = n*10 + int(c-'0')
		}
		if n > 255 {
			return "", false
		}
		octets[i] = n
	}
	return fmt.Sprintf("%d.%d.%d.%d", octets[0], octets[1], octets[2], octets[3]), true
}

// Key builds the socket registry key for a normalized address and port.
func Key(canonicalAddr string, port int) string {
	return fmt.Sprintf("%s:%d", canonicalAddr, port)
}
