package stream

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// scripted replays the results it was given, one per call.
type scripted struct {
	reads  []result
	writes []result
	sent   []byte
}

type result struct {
	data []byte
	n    int
	err  error
}

func (s *scripted) Read(p []byte) (int, error) {
	if len(s.reads) == 0 {
		return 0, io.EOF
	}

	r := s.reads[0]
	s.reads = s.reads[1:]
	n := copy(p, r.data)

	return n, r.err
}

func (s *scripted) Write(p []byte) (int, error) {
	if len(s.writes) == 0 {
		s.sent = append(s.sent, p...)
		return len(p), nil
	}

	r := s.writes[0]
	s.writes = s.writes[1:]
	n := r.n
	if n > len(p) {
		n = len(p)
	}

	s.sent = append(s.sent, p[:n]...)

	return n, r.err
}

func TestReliable_Read(t *testing.T) {
	t.Run("retries interrupts", func(t *testing.T) {
		s := &scripted{reads: []result{
			{err: unix.EINTR},
			{err: unix.EINTR},
			{data: []byte("hello")},
		}}

		buff := make([]byte, 16)
		n, err := NewReliable(s).Read(buff)
		require.NoError(t, err)
		require.Equal(t, "hello", string(buff[:n]))
	})

	t.Run("data with EOF", func(t *testing.T) {
		s := &scripted{reads: []result{{data: []byte("tail"), err: io.EOF}}}
		r := NewReliable(s)

		buff := make([]byte, 16)
		n, err := r.Read(buff)
		require.NoError(t, err)
		require.Equal(t, "tail", string(buff[:n]))

		_, err = r.Read(buff)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("fatal error", func(t *testing.T) {
		s := &scripted{reads: []result{{err: unix.ECONNRESET}}}
		_, err := NewReliable(s).Read(make([]byte, 4))
		require.ErrorIs(t, err, unix.ECONNRESET)
	})

	t.Run("no progress", func(t *testing.T) {
		reads := make([]result, maxConsecutiveEmptyReads)
		s := &scripted{reads: reads}
		_, err := NewReliable(s).Read(make([]byte, 4))
		require.ErrorIs(t, err, io.ErrNoProgress)
	})

	t.Run("empty buffer", func(t *testing.T) {
		n, err := NewReliable(new(scripted)).Read(nil)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestReliable_ReadFull(t *testing.T) {
	t.Run("across short reads", func(t *testing.T) {
		s := &scripted{reads: []result{
			{data: []byte("ab")},
			{err: unix.EINTR},
			{data: []byte("c")},
			{data: []byte("def")},
		}}

		buff := make([]byte, 6)
		n, err := NewReliable(s).ReadFull(buff)
		require.NoError(t, err)
		require.Equal(t, 6, n)
		require.Equal(t, "abcdef", string(buff))
	})

	t.Run("premature close", func(t *testing.T) {
		s := &scripted{reads: []result{{data: []byte("ab")}}}
		n, err := NewReliable(s).ReadFull(make([]byte, 6))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.Equal(t, 2, n)
	})

	t.Run("nothing at all", func(t *testing.T) {
		_, err := NewReliable(new(scripted)).ReadFull(make([]byte, 6))
		require.ErrorIs(t, err, io.EOF)
	})
}

func TestReliable_WriteAll(t *testing.T) {
	t.Run("partial writes and interrupts", func(t *testing.T) {
		s := &scripted{writes: []result{
			{n: 2},
			{err: unix.EINTR},
			{n: 1},
			{n: 0, err: unix.EINTR},
		}}

		require.NoError(t, NewReliable(s).WriteAll([]byte("hello world")))
		require.Equal(t, "hello world", string(s.sent))
	})

	t.Run("fatal error", func(t *testing.T) {
		s := &scripted{writes: []result{{n: 3}, {err: unix.EPIPE}}}
		err := NewReliable(s).WriteAll([]byte("hello world"))
		require.ErrorIs(t, err, unix.EPIPE)
		require.Equal(t, "hel", string(s.sent))
	})

	t.Run("stuck writer", func(t *testing.T) {
		writes := make([]result, maxConsecutiveEmptyReads)
		s := &scripted{writes: writes}
		err := NewReliable(s).WriteAll([]byte("x"))
		require.ErrorIs(t, err, io.ErrShortWrite)
	})
}

func TestIsInterrupt(t *testing.T) {
	require.True(t, IsInterrupt(unix.EINTR))
	require.True(t, IsInterrupt(errors.Join(errors.New("read"), unix.EINTR)))
	require.False(t, IsInterrupt(unix.EAGAIN))
	require.False(t, IsInterrupt(nil))
}
