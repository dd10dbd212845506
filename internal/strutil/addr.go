package strutil

import "strconv"

const defaultAddress = "0.0.0.0"

// NormalizeAddress fills in the wildcard host for addresses like ":8080".
func NormalizeAddress(addr string) string {
	if len(addr) == 0 {
		// the function should never receive empty address anyway
		return addr
	}

	if addr[0] == ':' {
		addr = defaultAddress + addr
	}

	return addr
}

// PortAddress returns the wildcard address listening on the port.
func PortAddress(port uint16) string {
	return defaultAddress + ":" + strconv.Itoa(int(port))
}
