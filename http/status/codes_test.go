package status

import (
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	for _, code := range KnownCodes {
		require.Equal(t, strconv.Itoa(int(code)), StringCode(code))
		require.NotEqual(t, Status("Unknown Status Code"), Text(code))
	}

	require.Equal(t, "413 Payload Too Large", Line(PayloadTooLarge))
	require.Equal(t, "200 OK", Line(OK))
	require.Equal(t, Status("Unknown Status Code"), Text(418))
}

func TestFailures(t *testing.T) {
	require.Len(t, Failures, 5)
	require.True(t, IsFailure(NotFound))
	require.False(t, IsFailure(OK))
	require.False(t, IsFailure(NoContent))
}

func TestErrors(t *testing.T) {
	t.Run("tagged", func(t *testing.T) {
		require.Equal(t, BadRequest, CodeOf(ErrBadContentLength))
		require.Equal(t, ParseError, KindOf(ErrBadContentLength))
		require.Equal(t, PayloadTooLarge, CodeOf(ErrBodyTooLarge))
		require.Equal(t, SizeLimitError, KindOf(ErrBodyTooLarge))
		require.Equal(t, BadRequest, CodeOf(ErrPrematureClose))
		require.Equal(t, IOError, KindOf(ErrPrematureClose))
		require.Equal(t, InternalServerError, CodeOf(ErrAllocation))
		require.Equal(t, ResourceError, KindOf(ErrAllocation))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("read body: %w", ErrPrematureClose)
		require.ErrorIs(t, err, ErrPrematureClose)
		require.Equal(t, BadRequest, CodeOf(err))
	})

	t.Run("untagged", func(t *testing.T) {
		require.Equal(t, InternalServerError, CodeOf(io.ErrUnexpectedEOF))
		require.Equal(t, ResourceError, KindOf(io.ErrUnexpectedEOF))
	})
}
