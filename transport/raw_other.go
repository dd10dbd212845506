//go:build !unix

package transport

import (
	"errors"
	"net"

	"github.com/indigo-web/framecast/internal/stream"
)

var errRawUnsupported = errors.New("raw sockets aren't supported on this platform")

func rawStream(net.Conn) (stream.Stream, func(), error) {
	return nil, nil, errRawUnsupported
}
