package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sitecms "github.com/cloudmlm/go-sitecms"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr    string
		migrate bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin and public JSON APIs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.loadModule(func(cfg *sitecms.Config) {
				if addr != "" {
					cfg.HTTP.Addr = addr
				}
			})
			if err != nil {
				return err
			}
			defer module.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err := module.Migrate(ctx); err != nil {
					return err
				}
			}
			return serve(ctx, module)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to http.addr)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Create the SQL schema before serving")
	return cmd
}

func serve(ctx context.Context, module *sitecms.Module) error {
	cfg := module.Container().Config
	handler, err := module.Handler()
	if err != nil {
		return err
	}
	logger := module.Logger("site.server")

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	logger.Info("server.shutting_down")
	return server.Shutdown(shutdownCtx)
}
