package http1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/indigo-web/framecast/alloc"
	"github.com/indigo-web/framecast/config"
	"github.com/indigo-web/framecast/http"
	"github.com/indigo-web/framecast/http/status"
	"github.com/indigo-web/framecast/internal/buffer"
	"github.com/indigo-web/framecast/internal/stream"
	"github.com/indigo-web/framecast/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	"golang.org/x/net/http/httpguts"
)

const (
	contentLengthPrefix = "Content-Length:"
	contentTypePrefix   = "Content-Type:"
	protoPrefix         = "HTTP/"
)

var terminator = []byte("\r\n\r\n")

// Parser frames a single request out of a stream. The header section is accumulated in a
// fixed-capacity buffer, whose memory is reused by subsequent calls, so a Parser must not be
// shared between goroutines.
type Parser struct {
	cfg       *config.Config
	headers   buffer.Buffer
	allocator alloc.Allocator
}

func NewParser(cfg *config.Config, allocator alloc.Allocator) *Parser {
	if allocator == nil {
		allocator = alloc.Heap{}
	}

	return &Parser{
		cfg:       cfg,
		headers:   buffer.New(cfg.Headers.MaxSize),
		allocator: allocator,
	}
}

// Parse reads exactly one request. On success the caller owns the request and must Release
// it. On failure no request is returned and nothing is left to be released; the error is
// always a status.HTTPError (possibly wrapped) telling which code to respond with.
func (p *Parser) Parse(s stream.Stream) (*http.Request, error) {
	r := stream.NewReliable(s)
	p.headers.Clear()

	headerEnd, err := p.readHeaders(r)
	if err != nil {
		return nil, err
	}

	data := p.headers.Bytes()
	request := new(http.Request)
	if err = p.parseHeaders(data[:headerEnd], request); err != nil {
		return nil, err
	}

	// the admission check goes before the allocation, so a declared length can never make us
	// allocate more than allowed
	if request.ContentLength > p.cfg.Body.MaxSize {
		return nil, status.ErrBodyTooLarge
	}

	if request.ContentLength == 0 {
		return request, nil
	}

	body, err := p.allocator.Alloc(int(request.ContentLength))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", status.ErrAllocation, err)
	}

	// some bytes of the body might have arrived together with the tail of the headers
	n := copy(body, data[headerEnd+len(terminator):])
	if _, err = r.ReadFull(body[n:]); err != nil {
		p.allocator.Free(body)

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, status.ErrPrematureClose
		}

		return nil, fmt.Errorf("%w: %w", status.ErrReadFailed, err)
	}

	return request.WithBody(body, p.allocator), nil
}

// readHeaders fills the buffer until the header terminator shows up and returns its offset.
func (p *Parser) readHeaders(r stream.Reliable) (int, error) {
	scanned := 0

	for !p.headers.Full() {
		n, err := r.Read(p.headers.Spare())
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, status.ErrPrematureClose
			}

			return 0, fmt.Errorf("%w: %w", status.ErrReadFailed, err)
		}

		p.headers.Extend(n)
		data := p.headers.Bytes()

		// the terminator may straddle the boundary between the previous read and this one
		from := max(scanned-len(terminator)+1, 0)
		if idx := bytes.Index(data[from:], terminator); idx != -1 {
			return from + idx, nil
		}

		scanned = len(data)
	}

	return 0, status.ErrHeaderTooLarge
}

// parseHeaders parses the header section without its terminator. Stored values are copied
// out, as the buffer is going to be overridden by the next request.
func (p *Parser) parseHeaders(header []byte, request *http.Request) error {
	requestLine, rest, _ := strings.Cut(uf.B2S(header), "\r\n")
	if err := p.parseRequestLine(requestLine, request); err != nil {
		return err
	}

	var seenContentLength bool

	for len(rest) > 0 {
		var line string
		line, rest, _ = strings.Cut(rest, "\r\n")
		if len(line) == 0 {
			break
		}

		switch {
		case hasPrefixFold(line, contentLengthPrefix):
			length, err := parseContentLength(line[len(contentLengthPrefix):])
			if err != nil {
				return err
			}

			if seenContentLength && length != request.ContentLength {
				return status.ErrBadContentLength
			}

			request.ContentLength = length
			seenContentLength = true
		case hasPrefixFold(line, contentTypePrefix):
			value := strutil.StripWS(line[len(contentTypePrefix):])
			request.ContentType = strings.Clone(strutil.Truncate(value, p.cfg.Request.ContentTypeSize))
		}
	}

	return nil
}

func (p *Parser) parseRequestLine(line string, request *http.Request) error {
	// method, target and optionally the protocol
	fields, ok := strutil.Fields(line, 3)
	if !ok || len(fields) < 2 {
		return status.ErrBadRequestLine
	}

	if len(fields) == 3 && !strings.HasPrefix(fields[2], protoPrefix) {
		return status.ErrUnsupportedProtocol
	}

	method, ok := strutil.Fit(fields[0], p.cfg.Request.MethodSize)
	if !ok {
		return status.ErrMethodTooLong
	}

	if !httpguts.ValidHeaderFieldName(method) {
		return status.ErrBadMethod
	}

	target, ok := strutil.Fit(fields[1], p.cfg.Request.PathSize)
	if !ok {
		return status.ErrURITooLong
	}

	path, _, _ := strings.Cut(target, "?")
	request.Method = strings.Clone(method)
	request.Path = strings.Clone(path)

	return nil
}

// parseContentLength accepts a non-negative decimal integer surrounded by optional
// whitespace. Signs, empty values, garbage and overflows are rejected.
func parseContentLength(value string) (uint64, error) {
	value = strutil.StripWS(value)
	if len(value) == 0 {
		return 0, status.ErrBadContentLength
	}

	var length uint64

	for i := 0; i < len(value); i++ {
		char := value[i]
		if char < '0' || char > '9' {
			return 0, status.ErrBadContentLength
		}

		digit := uint64(char - '0')
		if length > (math.MaxUint64-digit)/10 {
			return 0, status.ErrBadContentLength
		}

		length = length*10 + digit
	}

	return length, nil
}

func hasPrefixFold(str, prefix string) bool {
	return len(str) >= len(prefix) && strcomp.EqualFold(str[:len(prefix)], prefix)
}
