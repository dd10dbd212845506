package dummy

import (
	"io"
	"net"
	"syscall"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is a scripted connection. Every read returns the next chunk it was initialised with
// (or a part of it, if the reader's buffer is smaller), and io.EOF once they're over. Writes
// are accumulated and may be inspected via Written.
type Conn struct {
	chunks     [][]byte
	written    []byte
	interrupts bool
	pending    bool
	writeLimit int
	writeErr   error
	closed     bool
}

func NewConn(chunks ...[]byte) *Conn {
	return &Conn{chunks: chunks}
}

// NewConnString is NewConn for string chunks.
func NewConnString(chunks ...string) *Conn {
	bytesChunks := make([][]byte, len(chunks))
	for i, chunk := range chunks {
		bytesChunks[i] = []byte(chunk)
	}

	return NewConn(bytesChunks...)
}

// Interrupts makes every read and write fail with EINTR once before doing the actual job.
func (c *Conn) Interrupts() *Conn {
	c.interrupts = true
	return c
}

// PartialWrites makes every write transfer at most n bytes.
func (c *Conn) PartialWrites(n int) *Conn {
	c.writeLimit = n
	return c
}

// FailWrites makes every write fail with the error.
func (c *Conn) FailWrites(err error) *Conn {
	c.writeErr = err
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.interrupt() {
		return 0, syscall.EINTR
	}

	for len(c.chunks) > 0 && len(c.chunks[0]) == 0 {
		c.chunks = c.chunks[1:]
	}

	if len(c.chunks) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}

	if c.interrupt() {
		return 0, syscall.EINTR
	}

	if c.writeLimit > 0 && len(b) > c.writeLimit {
		b = b[:c.writeLimit]
	}

	c.written = append(c.written, b...)

	return len(b), nil
}

// Written returns everything written so far.
func (c *Conn) Written() []byte {
	return c.written
}

// Unread reports the number of scripted bytes nobody read.
func (c *Conn) Unread() (n int) {
	for _, chunk := range c.chunks {
		n += len(chunk)
	}

	return n
}

func (c *Conn) Closed() bool {
	return c.closed
}

func (c *Conn) interrupt() bool {
	if !c.interrupts {
		return false
	}

	c.pending = !c.pending

	return c.pending
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}
