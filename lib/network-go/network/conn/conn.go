//go:build linux || darwin

package conn

import (
	"fmt"
	"net"
	"os"
	"syscall"
)

// DialBroadcastUDP opens a UDP socket on port that may send to and receive from the broadcast address.
func DialBroadcastUDP(port int) (net.PacketConn, error) {
	s, err := syscall.Socket(syscall.AF_INET, syscall.SOCK_DGRAM, syscall.IPPROTO_UDP)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}
	if err := syscall.SetsockoptInt(s, syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1); err != nil {
		syscall.Close(s)
		return nil, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}
	if err := syscall.SetsockoptInt(s, syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1); err != nil {
		syscall.Close(s)
		return nil, fmt.Errorf("setsockopt SO_BROADCAST: %w", err)
	}
	if err := syscall.Bind(s, &syscall.SockaddrInet4{Port: port}); err != nil {
		syscall.Close(s)
		return nil, fmt.Errorf("bind port %d: %w", port, err)
	}

	f := os.NewFile(uintptr(s), "")
	defer f.Close()
	conn, err := net.FilePacketConn(f)
	if err != nil {
		return nil, fmt.Errorf("file packet conn: %w", err)
	}
	return conn, nil
}
