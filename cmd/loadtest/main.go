// Loadtest hammers a framecast server with short-lived connections.
//
//	loadtest [-timeout 5s] [host] [port] [total] [concurrency]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/indigo-web/framecast/internal/loadtest"
)

func usage() {
	def := loadtest.Default()
	_, _ = fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] [host] [port] [total_connections] [concurrency]\n"+
			"Defaults: host=%s port=%s total=%d concurrency=%d\n",
		os.Args[0], def.Host, def.Port, def.Total, def.Concurrency,
	)
	flag.PrintDefaults()
}

func main() {
	cfg := loadtest.Default()
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-connection timeout")
	flag.Usage = usage
	flag.Parse()

	if err := parseArgs(flag.Args(), &cfg); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Running load test against %s\n", cfg.Addr())
	fmt.Printf("Target connections: %d, concurrency: %d\n", cfg.Total, min(cfg.Concurrency, cfg.Total))

	result, err := loadtest.Run(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Completed in %.3fs\n", result.Elapsed.Seconds())
	fmt.Printf("Success: %d, Failure: %d (%.2f%% ok)\n", result.Success, result.Failure, result.Rate()*100)
	fmt.Printf("Connections/sec: %.2f\n", result.PerSecond())
	fmt.Printf("Response bytes: %d\n", result.Bytes)

	for _, failure := range result.Recent {
		fmt.Printf("  failure: %s\n", failure)
	}

	if result.Failure > 0 {
		os.Exit(1)
	}
}

func parseArgs(args []string, cfg *loadtest.Config) error {
	if len(args) > 4 {
		return fmt.Errorf("too many arguments: %d", len(args))
	}

	if len(args) > 0 {
		cfg.Host = args[0]
	}

	if len(args) > 1 {
		cfg.Port = args[1]
	}

	var err error

	if len(args) > 2 {
		if cfg.Total, err = parsePositive(args[2], "total_connections"); err != nil {
			return err
		}
	}

	if len(args) > 3 {
		if cfg.Concurrency, err = parsePositive(args[3], "concurrency"); err != nil {
			return err
		}
	}

	return nil
}

func parsePositive(arg, name string) (int, error) {
	value, err := strconv.Atoi(arg)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", name, arg)
	}

	return value, nil
}
