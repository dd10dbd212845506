package http

import (
	"testing"

	"github.com/indigo-web/framecast/http/mime"
	"github.com/indigo-web/framecast/http/status"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fields := NewResponse().Fields()
		require.Equal(t, "200 OK", fields.Status)
		require.Equal(t, "text/plain; charset=utf-8", fields.ContentType)
		require.Empty(t, fields.Body)
		require.Empty(t, fields.Extra)
	})

	t.Run("builder", func(t *testing.T) {
		fields := NewResponse().
			Code(status.NoContent).
			ContentType(mime.JPEG).
			String("abc").
			Header("Cache-Control", "no-store").
			RawHeaders("X-Frame: 1\r\n").
			Fields()

		require.Equal(t, "204 No Content", fields.Status)
		require.Equal(t, "image/jpeg", fields.ContentType)
		require.Equal(t, "abc", string(fields.Body))
		require.Equal(t, "Cache-Control: no-store\r\nX-Frame: 1\r\n", string(fields.Extra))
	})

	t.Run("json", func(t *testing.T) {
		resp, err := NewResponse().JSON(map[string]bool{"ok": true})
		require.NoError(t, err)
		fields := resp.Fields()
		require.Equal(t, `{"ok":true}`, string(fields.Body))
		require.Equal(t, mime.JSON, fields.ContentType)
	})
}

func TestError(t *testing.T) {
	for _, code := range status.Failures {
		fields := Error(code).Fields()
		require.Equal(t, code, fields.Code)
		require.Equal(t, string(status.Text(code)), string(fields.Body))
		require.Equal(t, DefaultContentType, fields.ContentType)
	}

	require.Equal(t, "Payload Too Large", string(Error(status.PayloadTooLarge).Fields().Body))
	require.Equal(t, status.InternalServerError, Error(status.OK).Fields().Code)
	require.Equal(t, status.BadRequest, ErrorOf(status.ErrBadContentLength).Fields().Code)
}
