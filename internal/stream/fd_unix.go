//go:build unix

package stream

import (
	"fmt"
	"io"
	"syscall"

	"golang.org/x/sys/unix"
)

var _ Stream = FD(0)

// FD is a stream operating directly on a blocking socket descriptor with plain read(2) and
// write(2) calls. Because the runtime poller isn't involved, EINTR surfaces here and is
// handled by Reliable.
type FD int

// Dup duplicates the descriptor of the connection and switches the copy into blocking mode.
// Only the lifetimes are independent: closing either one doesn't affect the other. The
// O_NONBLOCK flag is shared by both descriptors, so the original is left in blocking mode
// too and must not be used for I/O afterwards.
func Dup(conn syscall.Conn) (FD, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return -1, err
	}

	var (
		dup    = -1
		dupErr error
	)

	err = raw.Control(func(fd uintptr) {
		dup, dupErr = unix.Dup(int(fd))
	})
	if err != nil {
		return -1, err
	}
	if dupErr != nil {
		return -1, fmt.Errorf("dup: %w", dupErr)
	}

	if err = unix.SetNonblock(dup, false); err != nil {
		_ = unix.Close(dup)
		return -1, fmt.Errorf("set blocking: %w", err)
	}

	return FD(dup), nil
}

// Socketpair returns both ends of a connected AF_UNIX stream socket pair.
func Socketpair() (FD, FD, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, -1, err
	}

	return FD(fds[0]), FD(fds[1]), nil
}

func (f FD) Read(p []byte) (int, error) {
	n, err := unix.Read(int(f), p)
	switch {
	case n < 0:
		n = 0
	case n == 0 && err == nil && len(p) > 0:
		err = io.EOF
	}

	return n, err
}

func (f FD) Write(p []byte) (int, error) {
	n, err := unix.Write(int(f), p)
	if n < 0 {
		n = 0
	}

	return n, err
}

// CloseWrite shuts the sending side down, so the peer reads EOF.
func (f FD) CloseWrite() error {
	return unix.Shutdown(int(f), unix.SHUT_WR)
}

func (f FD) Close() error {
	return unix.Close(int(f))
}
