package http

import "github.com/indigo-web/framecast/alloc"

// Request is a fully materialized HTTP request. It is never handed out partially filled: if
// Body is non-nil, its length is exactly ContentLength.
type Request struct {
	// Method is the case-sensitive request method token.
	Method string
	// Path is the request target with the query stripped.
	Path string
	// ContentType is the verbatim (trimmed) value of the Content-Type header. Empty if the
	// header is absent.
	ContentType   string
	ContentLength uint64
	// Body is owned by the request and must be given back via Release. It's nil whenever
	// ContentLength is zero.
	Body      []byte
	allocator alloc.Allocator
}

// NewRequest returns a request without a body. Mostly useful for routing tests.
func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
	}
}

// WithBody attaches a body owned by the allocator. Release returns it there.
func (r *Request) WithBody(body []byte, allocator alloc.Allocator) *Request {
	r.Body = body
	r.ContentLength = uint64(len(body))
	r.allocator = allocator
	return r
}

// Release gives the body back to its allocator. Calling it on a request without a body, or
// more than once, does nothing.
func (r *Request) Release() {
	if r == nil || r.Body == nil {
		return
	}

	if r.allocator != nil {
		r.allocator.Free(r.Body)
	}

	r.Body = nil
	r.allocator = nil
}
