//go:build unix

package stream

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IsInterrupt reports whether the operation was interrupted by a signal before it could
// transfer anything and thus must be simply repeated.
func IsInterrupt(err error) bool {
	return errors.Is(err, unix.EINTR)
}
