package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/repository/sqlite"
	"github.com/mamadbah2/stockroom/internal/scheduler"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/router"
	inventorysvc "github.com/mamadbah2/stockroom/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/browser"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := sqlite.New(context.Background(), cfg.Database.Path, baseLogger.Named("repo.sqlite"))
	if err != nil {
		baseLogger.Fatal("failed to init sqlite repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			baseLogger.Error("failed to close sqlite database", zap.Error(err))
		}
	}()

	inventorySvc := inventorysvc.NewService(repo, baseLogger.Named("svc.inventory"))
	reportingSvc := reportingsvc.NewService(repo, baseLogger.Named("svc.reporting"))

	itemHandler := handlers.NewItemHandler(inventorySvc, reportingSvc, baseLogger.Named("handlers.items"))
	engine := router.New(itemHandler, cfg.Server.StaticDir, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	if cfg.Server.OpenBrowser {
		url := fmt.Sprintf("http://127.0.0.1:%s/", cfg.Server.Port)
		time.AfterFunc(1500*time.Millisecond, func() {
			if err := browser.OpenOnce(url); err != nil {
				baseLogger.Warn("failed to open browser", zap.Error(err))
			}
		})
	}

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
