package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"expensetracker/internal/config"
	"expensetracker/internal/controller"
	applog "expensetracker/internal/log"
	"expensetracker/internal/repository"
	"expensetracker/internal/storage"
	"expensetracker/internal/usecase"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		applog.New(applog.DefaultConfig()).Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	logger.Info("Starting expensetracker", applog.FieldDBPath, cfg.SQLiteDBPath)

	store, err := storage.NewStore(cfg.SQLiteDBPath, logger)
	if err != nil {
		logger.Error("Failed to open store", applog.FieldError, err, applog.FieldDBPath, cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// Explicit constructor wiring, performed once at startup.
	repo := repository.NewSQLiteRepository(store)
	useCases := usecase.New(repo)
	list := controller.NewListController(useCases, logger)
	defer list.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Mirror list-state snapshots to the log. This is the stand-in for the
	// UI collaborator: it subscribes once and re-renders on every change.
	g.Go(func() error {
		for ev := range list.WatchState(gctx) {
			state := ev.Value
			logger.Info("list state",
				applog.FieldCount, len(state.Expenses),
				applog.FieldAmount, state.Total,
				"categories", len(state.Categories),
				"loading", state.IsLoading,
				applog.FieldError, state.Error)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Shutdown error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Stopped gracefully")
}
