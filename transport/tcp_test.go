package transport

import (
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/indigo-web/framecast/config"
	"github.com/indigo-web/framecast/internal/stream"
	"github.com/stretchr/testify/require"
)

func getConfig(raw bool) config.NET {
	cfg := config.Default().NET
	cfg.AcceptLoopInterruptPeriod = 20 * time.Millisecond
	cfg.RawSocket = raw
	return cfg
}

func echo(served *atomic.Int64) func(stream.Stream) {
	return func(s stream.Stream) {
		buff := make([]byte, 64)
		n, err := s.Read(buff)
		if err == nil {
			_ = stream.NewReliable(s).WriteAll(buff[:n])
		}

		served.Add(1)
	}
}

func roundTrip(t *testing.T, addr, msg string) string {
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(msg))
	require.NoError(t, err)

	// the server closes the connection after the callback returns
	data, err := io.ReadAll(conn)
	require.NoError(t, err)

	return string(data)
}

func runTCP(t *testing.T, tcp *TCP, cfg config.NET, cb func(stream.Stream)) <-chan error {
	require.Nil(t, tcp.Addr())
	require.NoError(t, tcp.Bind("127.0.0.1:0"))
	require.NotNil(t, tcp.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- tcp.Listen(cfg, cb)
	}()

	return errCh
}

func TestTCP(t *testing.T) {
	for _, raw := range []bool{false, true} {
		name := "poller"
		if raw {
			name = "raw socket"
		}

		t.Run(name, func(t *testing.T) {
			served := new(atomic.Int64)
			tcp := NewTCP()
			errCh := runTCP(t, tcp, getConfig(raw), echo(served))
			defer tcp.Close()

			addr := tcp.Addr().String()
			for i := 0; i < 5; i++ {
				require.Equal(t, "ping", roundTrip(t, addr, "ping"))
			}
			require.Equal(t, int64(5), served.Load())

			tcp.Stop()
			select {
			case err := <-errCh:
				require.NoError(t, err)
			case <-time.After(5 * time.Second):
				require.Fail(t, "the accept loop didn't stop")
			}
		})
	}

	t.Run("stop doesn't interrupt a connection", func(t *testing.T) {
		tcp := NewTCP()
		entered := make(chan struct{})
		errCh := runTCP(t, tcp, getConfig(false), func(s stream.Stream) {
			close(entered)
			tcp.Stop()
			// the response is still written, even though the loop was asked to stop
			_ = stream.NewReliable(s).WriteAll([]byte("done"))
		})
		defer tcp.Close()

		require.Equal(t, "done", roundTrip(t, tcp.Addr().String(), "x"))
		<-entered
		require.NoError(t, <-errCh)
	})

	t.Run("bind failure", func(t *testing.T) {
		tcp := NewTCP()
		require.Error(t, tcp.Bind("256.0.0.1:0"))
		tcp.Close()
	})
}
