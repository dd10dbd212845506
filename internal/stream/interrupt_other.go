//go:build !unix

package stream

import (
	"errors"
	"syscall"
)

func IsInterrupt(err error) bool {
	return errors.Is(err, syscall.EINTR)
}
