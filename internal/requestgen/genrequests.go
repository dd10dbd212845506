// Package requestgen builds raw requests for tests and benchmarks.
package requestgen

import (
	"strconv"
	"strings"

	"github.com/dchest/uniuri"
)

type Header struct {
	Key, Value string
}

// Headers returns n headers, the last one always being Host. The rest have random names,
// so they're matched by nothing the framer knows about.
func Headers(n int) []Header {
	hdrs := make([]Header, 0, n)

	for i := 0; i < n-1; i++ {
		hdrs = append(hdrs, Header{
			Key:   "x-" + uniuri.NewLen(16) + "-" + strconv.Itoa(i),
			Value: strings.Repeat("b", 100),
		})
	}

	return append(hdrs, Header{Key: "Host", Value: "localhost"})
}

func HeadersBlock(hdrs []Header) (buff []byte) {
	for _, pair := range hdrs {
		buff = append(buff, pair.Key+": "+pair.Value+"\r\n"...)
	}

	return buff
}

// Generate returns a complete request. A non-empty body gets a matching Content-Length.
func Generate(method, path string, hdrs []Header, body string) (request []byte) {
	request = append(request, method+" "+path+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	if len(body) > 0 {
		request = append(request, "Content-Length: "+strconv.Itoa(len(body))+"\r\n"...)
	}

	request = append(request, "\r\n"...)

	return append(request, body...)
}
