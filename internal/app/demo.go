package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/five82/concierge/internal/config"
	"github.com/five82/concierge/internal/devserver"
	"github.com/five82/concierge/internal/logging"
)

// DemoOptions configure RunDemo.
type DemoOptions struct {
	Options
	Addr     string // listen address of the demo backend
	Token    string // bearer token the demo backend requires, if any
	Headless bool   // serve the backend only, without the TUI
}

// RunDemo starts the in-memory demo backend and, unless headless, the TUI
// pointed at it. It returns when the TUI exits or ctx is cancelled.
func RunDemo(ctx context.Context, opts DemoOptions, out io.Writer) error {
	addr := opts.Addr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	log, err := demoLogger(opts)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := devserver.New(devserver.Options{Token: opts.Token, Logger: log.Logger})
	ready := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx, addr, func(bound string) { ready <- bound })
	}()

	var bound string
	select {
	case bound = <-ready:
	case err := <-errCh:
		return fmt.Errorf("start demo backend: %w", err)
	}
	baseURL := "http://" + bound + devserver.APIPrefix

	if opts.Headless {
		fmt.Fprintf(out, "demo backend listening on %s\n", baseURL)
		return <-errCh
	}

	opts.Options.BaseURL = baseURL
	runErr := Run(ctx, opts.Options)
	cancel()
	if err := <-errCh; err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// demoLogger writes backend request logs to stderr when headless, and to a
// file beside the client log when the TUI owns the terminal.
func demoLogger(opts DemoOptions) (*logging.Logger, error) {
	if opts.Headless {
		return logging.New(logging.Options{Level: "info"})
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	file := strings.TrimSuffix(cfg.LogFile, filepath.Ext(cfg.LogFile)) + "-demo.log"
	return logging.New(logging.Options{File: file, Level: cfg.LogLevel})
}
