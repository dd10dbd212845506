package http

import (
	"github.com/indigo-web/framecast/http/mime"
	"github.com/indigo-web/framecast/http/status"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// DefaultContentType is used by every response unless overridden.
var DefaultContentType = mime.UTF8(mime.Plain)

// Response is a transient description of what has to be written back. The body is borrowed:
// the response never copies nor frees it.
type Response struct {
	code        status.Code
	contentType string
	body        []byte
	extra       []byte
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and a text/plain content-type.
func NewResponse() *Response {
	return &Response{
		code:        status.OK,
		contentType: DefaultContentType,
	}
}

// Code sets a Response code.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// ContentType sets a custom Content-Type header value.
func (r *Response) ContentType(value string) *Response {
	r.contentType = value
	return r
}

// Bytes sets the response body. The slice isn't copied and must stay intact until the
// response is written.
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	return r
}

// String sets the response body.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// JSON serializes the model into the response body and sets the application/json
// content-type.
func (r *Response) JSON(model any) (*Response, error) {
	data, err := json.ConfigCompatibleWithStandardLibrary.Marshal(model)
	if err != nil {
		return r, err
	}

	return r.ContentType(mime.JSON).Bytes(data), nil
}

// Header appends an extra header line. Content-Type, Content-Length and Connection are
// managed by the serializer and must not be set this way.
func (r *Response) Header(key, value string) *Response {
	r.extra = append(r.extra, key...)
	r.extra = append(r.extra, ": "...)
	r.extra = append(r.extra, value...)
	r.extra = append(r.extra, "\r\n"...)
	return r
}

// RawHeaders appends pre-formatted header lines, each of them terminated by CRLF.
func (r *Response) RawHeaders(lines string) *Response {
	r.extra = append(r.extra, lines...)
	return r
}

// Fields exposes everything the serializer needs.
func (r *Response) Fields() Fields {
	return Fields{
		Status:      status.Line(r.code),
		Code:        r.code,
		ContentType: r.contentType,
		Body:        r.body,
		Extra:       r.extra,
	}
}

// Fields is a flattened read-only view on a Response.
type Fields struct {
	// Status is the status part of the response line, e.g. "200 OK".
	Status      string
	Code        status.Code
	ContentType string
	Body        []byte
	// Extra are the pre-formatted extra header lines.
	Extra []byte
}

// Error returns the canned response of a failure code: a plain-text body equal to the status
// phrase. Codes without a canned response are treated as internal server errors.
func Error(code status.Code) *Response {
	if !status.IsFailure(code) {
		code = status.InternalServerError
	}

	return NewResponse().
		Code(code).
		String(string(status.Text(code)))
}

// ErrorOf returns the canned response the error surfaces as.
func ErrorOf(err error) *Response {
	return Error(status.CodeOf(err))
}
