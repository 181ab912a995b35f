package main

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"pocketledger/internal/cli"
	pkghttp "pocketledger/internal/http"
	"pocketledger/internal/seed"
	"pocketledger/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenStore(logger, cfg)
	ledger := services.NewLedger(store)
	defer func() {
		if err := ledger.Close(); err != nil {
			logger.Error("Failed to close ledger", "error", err)
		}
	}()

	ctx, cancel, shutdownTimeout := cli.ShutdownContext(logger, cfg.ShutdownTimeout)
	defer cancel()

	if cfg.SeedSampleData {
		if err := seed.EnsureSampleData(ctx, store); err != nil {
			logger.Error("Failed to seed sample data", "error", err)
		}
	}

	srv := pkghttp.NewServer(":"+cfg.Port, ledger, cfg.TrendMonths)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", "port", cfg.Port, "db_path", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", "timeout", shutdownTimeout)

		drainCtx, drainCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer drainCancel()
		return srv.Shutdown(drainCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		return
	}
	logger.Info("Server stopped")
}
