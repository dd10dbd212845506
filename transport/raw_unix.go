//go:build unix

package transport

import (
	"errors"
	"net"
	"syscall"

	"github.com/indigo-web/framecast/internal/stream"
)

var errNoSyscallConn = errors.New("connection doesn't expose its descriptor")

// rawStream duplicates the descriptor of the connection into a blocking one, operated by
// plain read(2) and write(2) calls.
func rawStream(conn net.Conn) (stream.Stream, func(), error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil, nil, errNoSyscallConn
	}

	fd, err := stream.Dup(sc)
	if err != nil {
		return nil, nil, err
	}

	return fd, func() {
		_ = fd.Close()
	}, nil
}
