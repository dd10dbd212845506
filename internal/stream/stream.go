package stream

import (
	"errors"
	"io"
)

// Stream is a connected duplex byte stream. It is allowed to return short reads, partial
// writes and interrupted-call errors: Reliable takes care of all of them.
type Stream interface {
	io.Reader
	io.Writer
}

// maxConsecutiveEmptyReads is the number of (0, nil) results tolerated before giving up.
const maxConsecutiveEmptyReads = 100

// Reliable wraps a stream so short and interrupted operations never leak into the caller.
type Reliable struct {
	s Stream
}

func NewReliable(s Stream) Reliable {
	return Reliable{s: s}
}

// Read reads at least one byte into p, retrying interrupted calls. A closed stream is
// reported as io.EOF, any other failure is returned as is.
func (r Reliable) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	for empty := 0; empty < maxConsecutiveEmptyReads; {
		n, err = r.s.Read(p)
		switch {
		case n > 0:
			// the error, if any, is going to be returned again by the next read
			return n, nil
		case err == nil:
			empty++
		case IsInterrupt(err):
		default:
			return 0, err
		}
	}

	return 0, io.ErrNoProgress
}

// ReadFull fills p completely. Running out of data before that is io.ErrUnexpectedEOF,
// unless nothing was read at all, then it's io.EOF.
func (r Reliable) ReadFull(p []byte) (n int, err error) {
	for n < len(p) {
		read, readErr := r.Read(p[n:])
		n += read
		if readErr != nil {
			if errors.Is(readErr, io.EOF) && n > 0 {
				readErr = io.ErrUnexpectedEOF
			}

			return n, readErr
		}
	}

	return n, nil
}

// WriteAll sends every byte of p, looping over partial writes and retrying interrupted
// calls.
func (r Reliable) WriteAll(p []byte) error {
	for empty := 0; len(p) > 0; {
		n, err := r.s.Write(p)
		if n > 0 {
			p = p[n:]
			empty = 0
		}

		switch {
		case err == nil:
			if n == 0 {
				if empty++; empty >= maxConsecutiveEmptyReads {
					return io.ErrShortWrite
				}
			}
		case IsInterrupt(err):
		default:
			return err
		}
	}

	return nil
}
