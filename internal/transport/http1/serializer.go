package http1

import (
	"strconv"
	"strings"

	"github.com/indigo-web/framecast/http"
	"github.com/indigo-web/framecast/http/status"
	"github.com/indigo-web/framecast/internal/stream"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"
)

const (
	protocol        = "HTTP/1.1 "
	contentType     = "Content-Type: "
	contentLength   = "Content-Length: "
	connectionClose = "Connection: close\r\n"
	crlf            = "\r\n"
)

// managedHeaders are always rendered by the serializer itself. Passing them as extra header
// lines would break the framing.
var managedHeaders = []string{"Content-Type", "Content-Length", "Connection", "Transfer-Encoding"}

// Serializer renders responses. The header is assembled in a scratch buffer of a fixed
// capacity: a header that doesn't fit is never sent, instead of being sent corrupted.
type Serializer struct {
	buff   []byte
	logger zerolog.Logger
}

func NewSerializer(buffSize int, logger zerolog.Logger) *Serializer {
	return &Serializer{
		buff:   make([]byte, 0, buffSize),
		logger: logger,
	}
}

// Write sends exactly one response and gives up silently (except for a log record) if
// anything goes wrong. The connection is expected to be closed right afterwards.
func (s *Serializer) Write(st stream.Stream, response *http.Response) {
	fields := response.Fields()

	if err := validate(fields); err != "" {
		s.logger.Warn().Str("status", fields.Status).Msg("response isn't sent: " + err)
		return
	}

	header, ok := s.render(fields)
	if !ok {
		s.logger.Warn().
			Str("status", fields.Status).
			Int("limit", cap(s.buff)).
			Msg("response isn't sent: header doesn't fit the buffer")
		return
	}

	w := stream.NewReliable(st)
	if err := w.WriteAll(header); err != nil {
		s.logger.Warn().Err(err).Str("status", fields.Status).Msg("failed to write response header")
		return
	}

	if len(fields.Body) > 0 {
		if err := w.WriteAll(fields.Body); err != nil {
			s.logger.Warn().Err(err).Str("status", fields.Status).Msg("failed to write response body")
		}
	}
}

// WriteError sends the canned response of the failure code.
func (s *Serializer) WriteError(st stream.Stream, code status.Code) {
	s.Write(st, http.Error(code))
}

// render returns the serialized header, or false if it would exceed the buffer. The length
// is computed beforehand, so the buffer never grows.
func (s *Serializer) render(fields http.Fields) ([]byte, bool) {
	length := strconv.Itoa(len(fields.Body))
	size := len(protocol) + len(fields.Status) + len(crlf) +
		len(contentType) + len(fields.ContentType) + len(crlf) +
		len(contentLength) + len(length) + len(crlf) +
		len(connectionClose) +
		len(fields.Extra) +
		len(crlf)

	if size > cap(s.buff) {
		return nil, false
	}

	buff := s.buff[:0]
	buff = append(buff, protocol...)
	buff = append(buff, fields.Status...)
	buff = append(buff, crlf...)
	buff = append(buff, contentType...)
	buff = append(buff, fields.ContentType...)
	buff = append(buff, crlf...)
	buff = append(buff, contentLength...)
	buff = append(buff, length...)
	buff = append(buff, crlf...)
	buff = append(buff, connectionClose...)
	buff = append(buff, fields.Extra...)
	buff = append(buff, crlf...)

	return buff, true
}

// validate returns a description of what's wrong with the response, or an empty string.
func validate(fields http.Fields) string {
	if !httpguts.ValidHeaderFieldValue(fields.ContentType) {
		return "invalid content-type"
	}

	extra := uf.B2S(fields.Extra)
	if len(extra) == 0 {
		return ""
	}

	if !strings.HasSuffix(extra, crlf) {
		return "extra headers aren't CRLF-terminated"
	}

	for _, line := range strings.Split(extra[:len(extra)-len(crlf)], crlf) {
		key, value, found := strings.Cut(line, ":")
		if !found || !httpguts.ValidHeaderFieldName(key) || !httpguts.ValidHeaderFieldValue(value) {
			return "malformed extra header line"
		}

		for _, managed := range managedHeaders {
			if strcomp.EqualFold(key, managed) {
				return "extra headers override " + managed
			}
		}
	}

	return ""
}
