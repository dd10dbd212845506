package http

import (
	"github.com/indigo-web/framecast/http"
	"github.com/indigo-web/framecast/http/status"
	"github.com/indigo-web/framecast/internal/stream"
	"github.com/indigo-web/framecast/internal/transport/http1"
	"github.com/indigo-web/framecast/router"
	"github.com/rs/zerolog"
)

// Server drives a single request-response exchange per connection. It isn't safe for
// concurrent use, as the transport reuses its buffers.
type Server struct {
	router    router.Router
	transport *http1.Transport
	logger    zerolog.Logger
}

func NewServer(r router.Router, trans *http1.Transport, logger zerolog.Logger) *Server {
	return &Server{
		router:    r,
		transport: trans,
		logger:    logger,
	}
}

// Serve reads a request, routes it and writes the response back. Closing the stream is up
// to the caller.
func (s *Server) Serve(st stream.Stream) {
	request, err := s.transport.Parse(st)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Stringer("kind", status.KindOf(err)).
			Int("code", int(status.CodeOf(err))).
			Msg("failed to read request")
		s.transport.Write(st, s.onError(err))
		return
	}

	response := s.onRequest(request)
	s.logger.Debug().
		Str("method", request.Method).
		Str("path", request.Path).
		Uint64("content_length", request.ContentLength).
		Str("status", response.Fields().Status).
		Msg("request")
	s.transport.Write(st, response)
	// the response may borrow the request body, so it's released only after being written
	request.Release()
}

func (s *Server) onError(err error) *http.Response {
	if resp := s.router.OnError(err); resp != nil {
		return resp
	}

	return http.ErrorOf(err)
}

func (s *Server) onRequest(request *http.Request) *http.Response {
	if resp := s.router.OnRequest(request); resp != nil {
		return resp
	}

	return http.NewResponse()
}
