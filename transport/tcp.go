package transport

import (
	"errors"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/indigo-web/framecast/config"
	"github.com/indigo-web/framecast/internal/stream"
)

var _ Transport = new(TCP)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

type TCP struct {
	l    listener
	stop *atomic.Bool
}

func NewTCP() *TCP {
	tcp := newTCP(nil)
	return &tcp
}

func newTCP(l listener) TCP {
	return TCP{
		l:    l,
		stop: new(atomic.Bool),
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	return net.ListenTCP("tcp", tcpaddr)
}

func (t *TCP) Bind(addr string) (err error) {
	t.l, err = bindTCP(addr)
	return err
}

// Addr returns the address the listener is bound to, or nil before Bind.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

// Listen accepts connections until Stop is called and processes them strictly one after
// another: the next connection isn't accepted until the callback returns. Every connection
// is closed by the time the callback returns.
func (t *TCP) Listen(cfg config.NET, cb func(stream.Stream)) error {
	for !t.stop.Load() {
		err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			if t.stop.Load() && errors.Is(err, net.ErrClosed) {
				return nil
			}

			return err
		}

		serve(cfg, conn, cb)
	}

	return nil
}

func serve(cfg config.NET, conn net.Conn, cb func(stream.Stream)) {
	defer func() {
		_ = conn.Close()
	}()

	if !cfg.RawSocket {
		cb(conn)
		return
	}

	raw, release, err := rawStream(conn)
	if err != nil {
		// fallback to the poller-driven connection
		cb(conn)
		return
	}

	cb(raw)
	release()
}

// Stop makes the loop exit at the next opportunity. A connection being processed is
// always completed first.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() {
	if t.l != nil {
		_ = t.l.Close()
	}
}
