package transport

import (
	"fmt"
	"net"
	"time"

	"sandreceipt/internal/printer"
)

// Raw printing port of network receipt printers
const DefaultTCPPort = "9100"

type TCPSink struct {
	conn net.Conn
}

// Connects to a network printer. An address without a port gets DefaultTCPPort.
func DialTCP(address string, timeout time.Duration) (*TCPSink, error) {
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(address, DefaultTCPPort)
	}

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't connect to %s:\n%w", printer.ErrDeviceUnavailable, address, err)
	}
	return &TCPSink{conn: conn}, nil
}

func (s *TCPSink) Write(data []byte) error {
	return partial(s.conn.Write(data))
}

func (s *TCPSink) Close() error {
	return s.conn.Close()
}
