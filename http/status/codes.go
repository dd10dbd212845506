package status

import "strconv"

type (
	Code   uint16
	Status string
)

// HTTP status codes spoken by the server. The protocol surface is intentionally narrow: two
// successful codes and five failure ones.
const (
	OK        Code = 200 // RFC 9110, 15.3.1
	NoContent Code = 204 // RFC 9110, 15.3.5

	BadRequest       Code = 400 // RFC 9110, 15.5.1
	NotFound         Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed Code = 405 // RFC 9110, 15.5.6
	PayloadTooLarge  Code = 413 // RFC 9110, 15.5.14

	InternalServerError Code = 500 // RFC 9110, 15.6.1
)

// KnownCodes lists every code Text knows about.
var KnownCodes = []Code{
	OK, NoContent, BadRequest, NotFound, MethodNotAllowed, PayloadTooLarge, InternalServerError,
}

// Failures lists the codes which have a canned error response.
var Failures = []Code{
	BadRequest, NotFound, MethodNotAllowed, PayloadTooLarge, InternalServerError,
}

// Text returns a text for the HTTP status code. It returns "Unknown Status Code" if the code
// is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case NoContent:
		return "No Content"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case PayloadTooLarge:
		return "Payload Too Large"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return "Unknown Status Code"
	}
}

// Line returns the status part of the response line, e.g. "200 OK".
func Line(code Code) string {
	return StringCode(code) + " " + string(Text(code))
}

func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}

// IsFailure reports whether the code has a canned error response.
func IsFailure(code Code) bool {
	for _, failure := range Failures {
		if failure == code {
			return true
		}
	}

	return false
}
