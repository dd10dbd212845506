// Package assets holds the static files served on fixed paths. Files are read once at
// startup and never touched again.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/indigo-web/framecast/http/mime"
)

// Entry describes a single static file and the path it's served on.
type Entry struct {
	URLPath     string
	FileName    string
	ContentType string
}

// Defaults is the table of files shipped with the web client.
var Defaults = []Entry{
	{URLPath: "/", FileName: "index.html", ContentType: mime.UTF8(mime.HTML)},
	{URLPath: "/styles.css", FileName: "styles.css", ContentType: mime.UTF8(mime.CSS)},
	{URLPath: "/app.js", FileName: "app.js", ContentType: mime.UTF8(mime.JavaScript)},
}

// Asset is a registered entry together with its contents.
type Asset struct {
	Entry
	Contents []byte
	loaded   bool
}

// Loaded tells whether the file was successfully read. Registered but not loaded assets
// must not be served.
func (a Asset) Loaded() bool {
	return a.loaded
}

type Table struct {
	assets map[string]Asset
}

// NewTable registers the entries without loading them.
func NewTable(entries []Entry) *Table {
	t := &Table{
		assets: make(map[string]Asset, len(entries)),
	}

	for _, entry := range entries {
		t.assets[entry.URLPath] = Asset{Entry: entry}
	}

	return t
}

// Load registers every entry and reads its file from root. Files which failed to load
// stay registered, and all the failures are returned joined together.
func Load(root string, entries []Entry, maxPathSize int) (*Table, error) {
	t := NewTable(entries)
	var errs []error

	for _, entry := range entries {
		contents, err := readFile(root, entry.FileName, maxPathSize)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.URLPath, err))
			continue
		}

		t.assets[entry.URLPath] = Asset{
			Entry:    entry,
			Contents: contents,
			loaded:   true,
		}
	}

	return t, errors.Join(errs...)
}

// Lookup reports whether the path is registered. An asset being registered doesn't mean it
// is loaded.
func (t *Table) Lookup(path string) (Asset, bool) {
	asset, found := t.assets[path]
	return asset, found
}

// Len returns the number of registered assets.
func (t *Table) Len() int {
	return len(t.assets)
}

var ErrPathTooLong = errors.New("asset path is too long")

func readFile(root, name string, maxPathSize int) ([]byte, error) {
	path := filepath.Join(root, name)
	if len(path) > maxPathSize {
		return nil, ErrPathTooLong
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if contents == nil {
		// empty files are perfectly valid assets
		contents = []byte{}
	}

	return contents, nil
}
