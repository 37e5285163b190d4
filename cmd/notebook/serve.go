// ABOUTME: Serve command for the loopback HTTP API.
// ABOUTME: Shuts down cleanly when the command context is cancelled.

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/harper/notebook/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serve the notebook over a JSON HTTP API, by default on 127.0.0.1:7878.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Serve.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewRouter(nb, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("http api listening", "addr", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
			logger.Info("shutting down http api")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, 127.0.0.1:7878)")
	rootCmd.AddCommand(serveCmd)
}
