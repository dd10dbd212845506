package http

import (
	"bufio"
	"bytes"
	"io"
	stdhttp "net/http"
	"testing"

	"github.com/indigo-web/framecast/alloc"
	"github.com/indigo-web/framecast/assets"
	"github.com/indigo-web/framecast/config"
	"github.com/indigo-web/framecast/http"
	"github.com/indigo-web/framecast/http/status"
	"github.com/indigo-web/framecast/internal/transport/http1"
	"github.com/indigo-web/framecast/router"
	"github.com/indigo-web/framecast/router/simple"
	"github.com/indigo-web/framecast/router/table"
	"github.com/indigo-web/framecast/store"
	"github.com/indigo-web/framecast/transport/dummy"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newServer(r router.Router) (*Server, *alloc.Budget, *bytes.Buffer) {
	cfg := config.Default()
	budget := alloc.NewBudget(int(cfg.Body.MaxSize), nil)
	logs := new(bytes.Buffer)
	logger := zerolog.New(logs).Level(zerolog.DebugLevel)

	return NewServer(r, http1.New(cfg, budget, logger), logger), budget, logs
}

func newTableServer() (*Server, *alloc.Budget) {
	server, budget, _ := newServer(table.New(assets.NewTable(nil), store.New(config.Default().Frame.MaxSize)))
	return server, budget
}

func exchange(t *testing.T, server *Server, raw string) (*stdhttp.Response, string) {
	conn := dummy.NewConnString(raw)
	server.Serve(conn)

	resp, err := stdhttp.ReadResponse(bufio.NewReader(bytes.NewReader(conn.Written())), nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestServer(t *testing.T) {
	t.Run("frame flow", func(t *testing.T) {
		server, budget := newTableServer()

		resp, body := exchange(t, server, "GET /api/frame HTTP/1.1\r\n\r\n")
		require.Equal(t, stdhttp.StatusNoContent, resp.StatusCode)
		require.Empty(t, body)
		require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

		resp, body = exchange(t, server, "POST /api/frame HTTP/1.1\r\nContent-Length: 6\r\n\r\nabc123")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		require.JSONEq(t, `{"ok":true}`, body)

		resp, body = exchange(t, server, "GET /api/frame HTTP/1.1\r\n\r\n")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
		require.Equal(t, "abc123", body)

		_, _ = exchange(t, server, "POST /api/frame HTTP/1.1\r\nContent-Length: 3\r\n\r\nxyz")
		_, body = exchange(t, server, "GET /api/frame?nocache=1 HTTP/1.1\r\n\r\n")
		require.Equal(t, "xyz", body)

		require.Zero(t, budget.Outstanding())
	})

	t.Run("failures", func(t *testing.T) {
		for _, tc := range []struct {
			Name    string
			Request string
			Code    int
		}{
			{"malformed request line", "GET\r\n\r\n", 400},
			{"bad content-length", "POST /api/frame HTTP/1.1\r\nContent-Length: abc\r\n\r\n", 400},
			{"empty frame", "POST /api/frame HTTP/1.1\r\n\r\n", 400},
			{"premature close", "POST /api/frame HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc", 400},
			{"body too large", "POST /api/frame HTTP/1.1\r\nContent-Length: 3145729\r\n\r\n", 413},
			{"not found", "GET /nope HTTP/1.1\r\n\r\n", 404},
			{"method not allowed", "DELETE /api/frame HTTP/1.1\r\n\r\n", 405},
		} {
			t.Run(tc.Name, func(t *testing.T) {
				server, budget := newTableServer()
				resp, body := exchange(t, server, tc.Request)
				require.Equal(t, tc.Code, resp.StatusCode)
				require.Equal(t, string(status.Text(status.Code(tc.Code))), body)
				require.Zero(t, budget.Outstanding())
			})
		}
	})

	t.Run("failure is logged with its kind", func(t *testing.T) {
		server, _, logs := newServer(table.New(assets.NewTable(nil), store.New(16)))
		server.Serve(dummy.NewConnString("GET / HTTP/1.1\r\nContent-Length: -1\r\n\r\n"))
		require.Contains(t, logs.String(), `"kind":"parse error"`)
		require.Contains(t, logs.String(), `"code":400`)
	})

	t.Run("nil responses", func(t *testing.T) {
		server, _, _ := newServer(simple.New(
			func(*http.Request) *http.Response { return nil },
			func(error) *http.Response { return nil },
		))

		resp, body := exchange(t, server, "GET / HTTP/1.1\r\n\r\n")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Empty(t, body)

		resp, _ = exchange(t, server, "GET / HTTP/1.1 extra\r\n\r\n")
		require.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	})

	t.Run("body is released after the response is written", func(t *testing.T) {
		var seen string
		server, budget, _ := newServer(simple.New(func(request *http.Request) *http.Response {
			seen = string(request.Body)
			// echo the body back without copying
			return http.NewResponse().Bytes(request.Body)
		}, nil))

		resp, body := exchange(t, server, "POST /echo HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "hello", seen)
		require.Equal(t, "hello", body)
		require.Zero(t, budget.Outstanding())
	})
}
