//go:build !linux && !darwin

package conn

import (
	"fmt"
	"net"
)

// DialBroadcastUDP opens a UDP socket on port. Broadcast permission is left to the platform default.
func DialBroadcastUDP(port int) (net.PacketConn, error) {
	conn, err := net.ListenPacket("udp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen udp port %d: %w", port, err)
	}
	return conn, nil
}
