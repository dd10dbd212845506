package status

import "errors"

// Kind classifies why a request could not be served.
type Kind uint8

const (
	// ParseError is a malformed request line, header or integer.
	ParseError Kind = iota + 1
	// SizeLimitError is a declared or actual length over the configured bound.
	SizeLimitError
	// IOError is a stream closed early or a non-interrupt read/write failure.
	IOError
	// ResourceError is an allocation failure or a missing server-side resource.
	ResourceError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case SizeLimitError:
		return "size limit error"
	case IOError:
		return "io error"
	case ResourceError:
		return "resource error"
	default:
		return "unknown error"
	}
}

// HTTPError is a failure tagged with its kind and the status code it surfaces as.
type HTTPError struct {
	Message string
	Code    Code
	Kind    Kind
}

func NewError(kind Kind, code Code, message string) error {
	return HTTPError{
		Message: message,
		Code:    code,
		Kind:    kind,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest          = NewError(ParseError, BadRequest, "bad request")
	ErrBadRequestLine      = NewError(ParseError, BadRequest, "malformed request line")
	ErrBadMethod           = NewError(ParseError, BadRequest, "malformed request method")
	ErrMethodTooLong       = NewError(ParseError, BadRequest, "request method is too long")
	ErrURITooLong          = NewError(ParseError, BadRequest, "request URI is too long")
	ErrUnsupportedProtocol = NewError(ParseError, BadRequest, "unsupported protocol")
	ErrBadContentLength    = NewError(ParseError, BadRequest, "malformed Content-Length")
	ErrHeaderTooLarge      = NewError(ParseError, BadRequest, "header section exceeds the buffer")
	ErrBodyTooLarge        = NewError(SizeLimitError, PayloadTooLarge, "request body is too large")
	ErrFrameTooLarge       = NewError(SizeLimitError, PayloadTooLarge, "frame is too large")
	ErrEmptyFrame          = NewError(ParseError, BadRequest, "frame is empty")
	ErrPrematureClose      = NewError(IOError, BadRequest, "connection closed before the request was complete")
	ErrReadFailed          = NewError(IOError, BadRequest, "failed to read the request")
	ErrWriteFailed         = NewError(IOError, InternalServerError, "failed to write the response")
	ErrAllocation          = NewError(ResourceError, InternalServerError, "failed to allocate the request body")
	ErrAssetNotLoaded      = NewError(ResourceError, InternalServerError, "static asset is not loaded")
)

// CodeOf returns the status code the error surfaces as. Errors not carrying a tag are
// internal server errors.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}

// KindOf returns the kind of the error, or ResourceError if it isn't tagged.
func KindOf(err error) Kind {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Kind
	}

	return ResourceError
}
