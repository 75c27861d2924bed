package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/appstore/internal/inspect"
)

func inspectCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve the HTTP inspector",
		Long: `Serve an HTTP inspector for a live store.

The inspector exposes the current snapshot, mutation endpoints, a
WebSocket stream of state changes, and Prometheus metrics.

Examples:
  appstore inspect
  appstore inspect --addr :7070
  curl -X PUT localhost:7070/viewport -d '{"width":375}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(flags, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from appstore.json)")

	return cmd
}

func runInspect(flags *globalFlags, addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e, err := setup(ctx, flags)
	if err != nil {
		return err
	}
	defer e.Close()

	if addr == "" {
		addr = e.cfg.Inspect.Addr
	}
	delay, err := e.cfg.ReloadDelay()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: addr,
		Handler: inspect.New(e.store, inspect.Config{
			Registry:    e.tel.Registry(),
			Catalog:     e.catalog,
			ReloadDelay: delay,
			Logger:      e.logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	success("Inspector listening on http://%s", addr)
	info("Store %s, locale %s", e.store.ID(), e.store.Locale().Get())

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-sigCh:
		fmt.Println("\n\n  Shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
