package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
	"github.com/saulo-duarte/quizmate-lambda/internal/container"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		config.Logger().WithError(err).Warn("Failed to load .env")
	}

	app := &cli.App{
		Name:   "quizmate-api",
		Usage:  "study assistant backend with per-user chat memory and quiz generation",
		Flags:  flags(),
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		config.Logger().WithError(err).Fatal("quizmate-api stopped")
	}
}

func run(c *cli.Context) error {
	settings, err := settingsFromContext(c)
	if err != nil {
		return err
	}
	config.InitLogger(settings.LogLevel)
	log := config.Logger()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctn, err := container.New(ctx, settings)
	if err != nil {
		return err
	}
	defer ctn.Close()

	handler := ctn.Router()

	if settings.Lambda {
		log.Info("Starting in AWS Lambda mode")
		lambda.StartWithOptions(httpadapter.New(handler).ProxyWithContext, lambda.WithContext(ctx))
		return nil
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", settings.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", settings.Port).Info("Backend running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
