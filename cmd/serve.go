package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/web/server"
)

// Serve runs the HTTP render API until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	limits := server.DefaultLimits()
	if ctx.IsSet("max-size") {
		limits.MaxWidth = ctx.Int("max-size")
		limits.MaxHeight = ctx.Int("max-size")
	}
	srv := server.New(log.New("server"), limits)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx.String("addr"))
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	logger.Notice("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
