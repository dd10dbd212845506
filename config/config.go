package config

import "time"

type (
	Headers struct {
		// MaxSize is the capacity of the buffer the header section is read into. A request whose
		// header terminator doesn't arrive within this many bytes is rejected.
		MaxSize int
	}

	Request struct {
		// MethodSize is the longest request method accepted. Longer ones are rejected, not cut.
		MethodSize int
		// PathSize is the longest request target (including the query) accepted.
		PathSize int
		// ContentTypeSize is the capacity of the Content-Type value. Longer values are
		// truncated.
		ContentTypeSize int
	}

	Body struct {
		// MaxSize is the maximal declared Content-Length. The check happens before the body
		// buffer is allocated.
		MaxSize uint64
	}

	Frame struct {
		// MaxSize is the capacity of the frame store slot.
		MaxSize int
	}

	NET struct {
		// WriteBufferSize bounds the serialized response header. A response whose header doesn't
		// fit isn't sent at all.
		WriteBufferSize int
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
		// RawSocket makes connections be served through plain read(2)/write(2) calls on a
		// duplicated blocking descriptor instead of the runtime network poller.
		RawSocket bool `test:"nullable"`
	}

	Assets struct {
		// Root is the directory static assets are loaded from.
		Root string
		// MaxPathSize limits the length of an asset file path on disk.
		MaxPathSize int
	}
)

// Config holds the limitations of the protocol layer and the parameters of its surroundings.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Headers Headers
	Request Request
	Body    Body
	Frame   Frame
	NET     NET
	Assets  Assets
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Headers: Headers{
			MaxSize: 16 * 1024,
		},
		Request: Request{
			MethodSize:      7,
			PathSize:        255,
			ContentTypeSize: 127,
		},
		Body: Body{
			MaxSize: 3 * 1024 * 1024,
		},
		Frame: Frame{
			MaxSize: 2 * 1024 * 1024,
		},
		NET: NET{
			WriteBufferSize:           1024,
			AcceptLoopInterruptPeriod: 500 * time.Millisecond,
		},
		Assets: Assets{
			Root:        "web",
			MaxPathSize: 1024,
		},
	}
}
