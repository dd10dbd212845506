package simple

import (
	"github.com/indigo-web/framecast/http"
	"github.com/indigo-web/framecast/router"
)

type (
	Handler      func(*http.Request) *http.Response
	ErrorHandler func(error) *http.Response
)

type simpleRouter struct {
	handler    Handler
	errHandler ErrorHandler
}

// New wraps plain functions into a router. A nil errHandler responds with the canned
// response of the error.
func New(handler Handler, errHandler ErrorHandler) router.Router {
	if errHandler == nil {
		errHandler = http.ErrorOf
	}

	return simpleRouter{
		handler:    handler,
		errHandler: errHandler,
	}
}

func (r simpleRouter) OnRequest(request *http.Request) *http.Response {
	return r.handler(request)
}

func (r simpleRouter) OnError(err error) *http.Response {
	return r.errHandler(err)
}
