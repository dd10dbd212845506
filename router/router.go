package router

import "github.com/indigo-web/framecast/http"

// Router decides what to respond. OnRequest is called on every successfully framed request,
// OnError on every request that failed to be framed. A nil response from OnRequest results
// in an empty 200 OK, and from OnError in the canned response of the error.
type Router interface {
	OnRequest(request *http.Request) *http.Response
	OnError(err error) *http.Response
}
