// Package loadtest opens many short-lived connections against a running server, each of
// them carrying a single GET request, and counts how many got a 200 response.
package loadtest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/indigo-web/framecast/internal/stream"
)

// recentCap is how many of the latest failures are kept for the report.
const recentCap = 8

var (
	ErrBadConfig     = errors.New("bad load test config")
	ErrNotOK         = errors.New("response isn't 200 OK")
	ErrEmptyResponse = errors.New("empty response")
)

var okMarkers = [][]byte{[]byte("HTTP/1.1 200"), []byte("HTTP/1.0 200")}

type Config struct {
	Host        string
	Port        string
	Total       int
	Concurrency int
	// Timeout bounds every single connection, from dialing to the last byte read.
	Timeout time.Duration
}

// Default returns default config.
func Default() Config {
	return Config{
		Host:        "127.0.0.1",
		Port:        "8080",
		Total:       1000,
		Concurrency: 100,
		Timeout:     5 * time.Second,
	}
}

// Addr returns the dialed address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c Config) validate() error {
	switch {
	case c.Total <= 0:
		return fmt.Errorf("%w: total must be positive", ErrBadConfig)
	case c.Concurrency <= 0:
		return fmt.Errorf("%w: concurrency must be positive", ErrBadConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrBadConfig)
	}

	return nil
}

type Result struct {
	Elapsed time.Duration
	Success int64
	Failure int64
	// Bytes is the total size of all the successful responses.
	Bytes int64
	// Recent are the latest failures, the most recent one last.
	Recent []error
}

// Rate returns the share of successful connections, between 0 and 1.
func (r Result) Rate() float64 {
	total := r.Success + r.Failure
	if total == 0 {
		return 0
	}

	return float64(r.Success) / float64(total)
}

// PerSecond returns the number of completed connections per second.
func (r Result) PerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}

	return float64(r.Success+r.Failure) / r.Elapsed.Seconds()
}

// Run performs exactly cfg.Total connections using min(cfg.Concurrency, cfg.Total) workers.
// Cancelling the context stops the workers from taking new connections, so the result then
// covers fewer connections.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	workers := min(cfg.Concurrency, cfg.Total)
	l := &loadTest{
		cfg:     cfg,
		request: request(cfg.Host),
		recent:  queue.New(),
	}

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.work(ctx)
		}()
	}

	wg.Wait()

	return l.result(time.Since(start)), nil
}

type loadTest struct {
	cfg     Config
	request []byte
	next    atomic.Int64
	success atomic.Int64
	failure atomic.Int64
	bytes   atomic.Int64

	mu     sync.Mutex
	recent *queue.Queue
}

func (l *loadTest) work(ctx context.Context) {
	for ctx.Err() == nil {
		if id := l.next.Add(1) - 1; id >= int64(l.cfg.Total) {
			return
		}

		n, err := l.roundTrip(ctx)
		if err != nil {
			l.failure.Add(1)
			l.remember(err)
			continue
		}

		l.success.Add(1)
		l.bytes.Add(int64(n))
	}
}

func (l *loadTest) roundTrip(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", l.cfg.Addr())
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = conn.Close()
	}()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err = stream.NewReliable(conn).WriteAll(l.request); err != nil {
		return 0, fmt.Errorf("write request: %w", err)
	}

	return readResponse(conn)
}

// readResponse reads until the server closes the connection. The status marker is
// searched for across read boundaries.
func readResponse(r io.Reader) (int, error) {
	var (
		buff  = make([]byte, 1024)
		tail  []byte
		total int
		ok    bool
	)

	for {
		n, err := r.Read(buff)
		total += n

		if !ok && n > 0 {
			window := append(tail, buff[:n]...)
			ok = containsOK(window)
			tail = append(tail[:0], window[max(len(window)-len(okMarkers[0])+1, 0):]...)
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return total, fmt.Errorf("read response: %w", err)
			}

			break
		}
	}

	switch {
	case total == 0:
		return 0, ErrEmptyResponse
	case !ok:
		return total, ErrNotOK
	default:
		return total, nil
	}
}

func containsOK(data []byte) bool {
	for _, marker := range okMarkers {
		if bytes.Contains(data, marker) {
			return true
		}
	}

	return false
}

func (l *loadTest) remember(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.recent.Add(err)
	if l.recent.Length() > recentCap {
		l.recent.Remove()
	}
}

func (l *loadTest) result(elapsed time.Duration) Result {
	l.mu.Lock()
	recent := make([]error, l.recent.Length())
	for i := range recent {
		recent[i] = l.recent.Get(i).(error)
	}
	l.mu.Unlock()

	return Result{
		Elapsed: elapsed,
		Success: l.success.Load(),
		Failure: l.failure.Load(),
		Bytes:   l.bytes.Load(),
		Recent:  recent,
	}
}

func request(host string) []byte {
	return []byte("GET / HTTP/1.1\r\nHost: " + host + "\r\nConnection: close\r\n\r\n")
}
