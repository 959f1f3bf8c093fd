package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/suryanavv/ims/internal/config"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := config.New()
			if addr == "" {
				addr = c.GetPort()
			}
			displayAppname(c.GetAppName())
			return run(cmd.Context(), c, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to PORT)")
	return cmd
}

func run(ctx context.Context, c config.Config, addr string) error {
	app, err := newApp(ctx, c)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("api", c.GetAPIBaseURL()).Msg("console listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- errors.Wrap(err, "[serve] ListenAndServe")
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-serveErr:
		if ok {
			return err
		}
		return nil
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}
	return shutdown(srv)
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "[serve] Shutdown")
	}
	log.Info().Msg("server stopped")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
