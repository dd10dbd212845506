package framecast

import (
	"fmt"
	"net"

	"github.com/indigo-web/framecast/alloc"
	"github.com/indigo-web/framecast/assets"
	"github.com/indigo-web/framecast/config"
	"github.com/indigo-web/framecast/internal/server/http"
	"github.com/indigo-web/framecast/internal/strutil"
	"github.com/indigo-web/framecast/internal/transport/http1"
	"github.com/indigo-web/framecast/router/table"
	"github.com/indigo-web/framecast/store"
	"github.com/indigo-web/framecast/transport"
	"github.com/rs/zerolog"
)

// App serves the web client and relays uploaded frames. Connections are processed one at a
// time, in the order they arrive.
type App struct {
	addr      string
	cfg       *config.Config
	logger    zerolog.Logger
	entries   []assets.Entry
	allocator alloc.Allocator
	hooks     hooks
	transport *transport.TCP
}

// New returns a new App instance, which will listen on the address once served. Addresses
// like ":8080" listen on every interface.
func New(addr string) *App {
	return &App{
		addr:      strutil.NormalizeAddress(addr),
		cfg:       config.Default(),
		logger:    zerolog.Nop(),
		entries:   assets.Defaults,
		allocator: alloc.Heap{},
		transport: transport.NewTCP(),
	}
}

// Tune replaces default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger sets the logger. Nothing is logged by default.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// Assets replaces the default table of static files. The files are looked up in the
// config.Assets.Root directory.
func (a *App) Assets(entries []assets.Entry) *App {
	a.entries = entries
	return a
}

// Allocator sets the allocator request bodies are obtained from.
func (a *App) Allocator(allocator alloc.Allocator) *App {
	a.allocator = allocator
	return a
}

// NotifyOnStart calls the callback at the moment, when the listener is bound and the server
// is about to accept connections.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the server is down. It's guaranteed,
// that at the moment as the callback is called, the server isn't able to accept any new
// connections and the last client is already disconnected
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve loads the static assets, binds the address and runs the accept loop until Stop is
// called. Failing to load any of the assets is fatal.
func (a *App) Serve() error {
	files, err := assets.Load(a.cfg.Assets.Root, a.entries, a.cfg.Assets.MaxPathSize)
	if err != nil {
		a.logger.Error().Err(err).Str("root", a.cfg.Assets.Root).Msg("failed to load static assets")
		return fmt.Errorf("load assets: %w", err)
	}

	r := table.New(files, store.New(a.cfg.Frame.MaxSize))
	trans := http1.New(a.cfg, a.allocator, a.logger)
	server := http.NewServer(r, trans, a.logger)

	if err = a.transport.Bind(a.addr); err != nil {
		return fmt.Errorf("bind %s: %w", a.addr, err)
	}

	a.logger.Info().
		Str("addr", a.transport.Addr().String()).
		Int("assets", files.Len()).
		Bool("raw_socket", a.cfg.NET.RawSocket).
		Msg("listening")

	callIfNotNil(a.hooks.OnStart)
	err = a.transport.Listen(a.cfg.NET, server.Serve)
	a.transport.Close()
	callIfNotNil(a.hooks.OnStop)
	a.logger.Info().Msg("stopped")

	return err
}

// Addr returns the bound address. It's nil until the App is started.
func (a *App) Addr() net.Addr {
	return a.transport.Addr()
}

// Stop makes the accept loop exit once the current connection (if any) is processed.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// may still be working
func (a *App) Stop() {
	a.transport.Stop()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
