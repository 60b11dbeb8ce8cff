package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lead-harmonizer/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr, mappingPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg
			if addr == "" {
				addr = cfg.Addr
			}

			if mappingPath == "" {
				mappingPath = cfg.RulesFile
			}

			logger := slog.Default()

			mf, err := loadMapping(mappingPath, logger)
			if err != nil {
				return err
			}

			h, err := newHarmonizer(cfg, mf, logger)
			if err != nil {
				return err
			}

			e := api.NewServer(api.NewHandler(h, version, logger))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr, "classifier", cfg.Mode())
				errCh <- e.Start(addr)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}

				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			logger.Info("shutting down")

			return e.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from HARMONIZER_ADDR)")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "mapping file with pinned columns and rule overrides")

	return cmd
}
