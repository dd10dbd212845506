package transport

import (
	"net"

	"github.com/indigo-web/framecast/config"
	"github.com/indigo-web/framecast/internal/stream"
)

// Transport is a source of connections. Listen blocks, handing every accepted connection
// to the callback one at a time.
type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, cb func(stream.Stream)) error
	Addr() net.Addr
	Stop()
	Close()
}
