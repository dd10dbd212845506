// Package table implements the fixed routing table of the server: static assets, and the
// frame upload and download endpoints.
package table

import (
	"github.com/indigo-web/framecast/assets"
	"github.com/indigo-web/framecast/http"
	"github.com/indigo-web/framecast/http/method"
	"github.com/indigo-web/framecast/http/mime"
	"github.com/indigo-web/framecast/http/status"
	"github.com/indigo-web/framecast/router"
	"github.com/indigo-web/framecast/store"
)

const FramePath = "/api/frame"

var _ router.Router = new(Table)

type ack struct {
	OK bool `json:"ok"`
}

type Table struct {
	assets *assets.Table
	frame  *store.Frame
	ack    []byte
}

func New(files *assets.Table, frame *store.Frame) *Table {
	// the acknowledgement never changes, so it's serialized just once
	ackResp, err := http.NewResponse().JSON(ack{OK: true})
	if err != nil {
		panic(err)
	}

	return &Table{
		assets: files,
		frame:  frame,
		ack:    ackResp.Fields().Body,
	}
}

func (t *Table) OnRequest(request *http.Request) *http.Response {
	m := method.Parse(request.Method)

	if m == method.GET {
		if asset, found := t.assets.Lookup(request.Path); found {
			return t.static(asset)
		}
	}

	if request.Path != FramePath {
		return http.Error(status.NotFound)
	}

	switch m {
	case method.POST:
		return t.upload(request)
	case method.GET:
		return t.download()
	default:
		return http.Error(status.MethodNotAllowed)
	}
}

func (t *Table) OnError(err error) *http.Response {
	return http.ErrorOf(err)
}

func (t *Table) static(asset assets.Asset) *http.Response {
	if !asset.Loaded() {
		return http.ErrorOf(status.ErrAssetNotLoaded)
	}

	return noStore(http.NewResponse().
		ContentType(asset.ContentType).
		Bytes(asset.Contents))
}

func (t *Table) upload(request *http.Request) *http.Response {
	// an empty frame is a bad request (400), an oversized one is 413
	if err := t.frame.Replace(request.Body); err != nil {
		return http.ErrorOf(err)
	}

	return noStore(http.NewResponse().
		ContentType(mime.JSON).
		Bytes(t.ack))
}

func (t *Table) download() *http.Response {
	frame := t.frame.Read()
	if frame == nil {
		return noStore(http.NewResponse().Code(status.NoContent))
	}

	return noStore(http.NewResponse().
		ContentType(mime.JPEG).
		Bytes(frame))
}

func noStore(resp *http.Response) *http.Response {
	return resp.Header("Cache-Control", "no-store")
}
