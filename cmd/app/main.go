package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"zapshift/cmd"
	httpin "zapshift/internal/adapters/in/http"
	"zapshift/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		log.Fatalf("%v", err)
	}
}

// run owns every resource it opens; returning unwinds the deferred shutdown before
// main exits.
func run(logger *slog.Logger) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gormDB, err := openDatabase(config)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	app := cmd.NewCompositionRoot(config, gormDB, logger)
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close adapters", "error", err)
		}
	}()

	jobManager := app.JobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	defer jobManager.StopAll()

	if err := startWebServer(app, config, logger); err != nil {
		logger.Error("web server stopped", "error", err)
	}
	return nil
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn, err := config.DSN()
	if err != nil {
		return nil, err
	}
	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gormDB, nil
}

// startWebServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func startWebServer(app *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := httpin.NewEcho(httpin.NewServer(app.Handlers(), app.Verifier()), logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", config.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
