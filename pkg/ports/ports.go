// Package ports picks the loopback port the state bridge listens on.
package ports

import (
	"fmt"
	"net"
)

// FindAvailable returns the preferred port if it is free, otherwise the
// first free port in the 100 ports above it. The probe binds the loopback
// interface, matching how the bridge listens.
func FindAvailable(preferred int) (int, error) {
	last := preferred + 100
	if last > 65535 {
		last = 65535
	}

	for port := preferred; port <= last; port++ {
		if isAvailable(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", preferred, last)
}

// isAvailable checks a port by attempting to listen on it
func isAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
