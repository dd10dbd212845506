// Framecast serves the web client and relays camera frames between browsers.
//
//	framecast [-web dir] [-debug] [-raw] [-port 8080 | port]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/indigo-web/framecast"
	"github.com/indigo-web/framecast/config"
	"github.com/indigo-web/framecast/internal/strutil"
	"github.com/rs/zerolog"
)

const defaultPort = 8080

var errBadPort = errors.New("port must be an integer in range 1..65535")

func main() {
	var (
		port  = flag.String("port", strconv.Itoa(defaultPort), "port to listen on (may also be passed as the first argument)")
		web   = flag.String("web", config.Default().Assets.Root, "directory with the static assets")
		debug = flag.Bool("debug", false, "enable debug logs")
		raw   = flag.Bool("raw", false, "serve connections with plain read/write calls on a blocking socket")
	)
	flag.Parse()

	logger := newLogger(*debug)

	portArg := *port
	if flag.NArg() > 0 {
		portArg = flag.Arg(0)
	}

	portNum, err := parsePort(portArg)
	if err != nil {
		logger.Error().Err(err).Str("port", portArg).Msg("invalid port")
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.Assets.Root = *web
	cfg.NET.RawSocket = *raw

	app := framecast.New(strutil.PortAddress(portNum)).
		Tune(cfg).
		Logger(logger).
		NotifyOnStart(func() {
			fmt.Printf("Server listening on http://0.0.0.0:%d\n", portNum)
		}).
		NotifyOnStop(func() {
			fmt.Println("Server stopped.")
		})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Info().Stringer("signal", sig).Msg("shutting down")
		app.Stop()
	}()

	if err = app.Serve(); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func parsePort(str string) (uint16, error) {
	port, err := strconv.ParseUint(str, 10, 16)
	if err != nil || port == 0 {
		return 0, errBadPort
	}

	return uint16(port), nil
}
