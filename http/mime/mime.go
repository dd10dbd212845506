package mime

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	JavaScript  MIME = "application/javascript"
	JSON        MIME = "application/json"
	JPEG        MIME = "image/jpeg"
)

// UTF8 appends the utf-8 charset parameter to the MIME.
func UTF8(m MIME) MIME {
	return m + "; charset=utf-8"
}
