package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	app "github.com/soumyadeepdutta/tamperproof-users/internal/application/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/bootstrap"
	"github.com/soumyadeepdutta/tamperproof-users/internal/config"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/db"
	infrafile "github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/file"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/repository"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	pgxStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect record store: %v", err)
	}
	defer pgxStore.Close()
	store := gateway.Instrument(pgxStore, metrics)

	users := repository.NewUserRepository(store)
	if err := users.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure users schema: %v", err)
	}
	candidates := repository.NewCandidateRepository(store)

	runLog, err := db.Open(cfg.RunLogDSN)
	if err != nil {
		log.Fatalf("failed to open run log: %v", err)
	}
	if err := db.Migrate(runLog); err != nil {
		log.Fatalf("failed to migrate run log: %v", err)
	}
	runs := repository.NewImportRunRepository(runLog)

	pipeline := app.NewPipeline(
		infrafile.NewDatasetReader(infrafile.NewLocalSource(cfg.ImportBaseDir)),
		candidates,
		app.NewImportDataset(candidates, metrics),
		app.NewVerify(candidates),
	)

	importCtx, stopImports := context.WithCancel(ctx)
	defer stopImports()
	launcher := app.NewImportLauncher(importCtx, runs, pipeline, metrics, app.ImportLauncherConfig{
		DefaultBatchSize: cfg.BatchSize,
		SampleSize:       cfg.VerifySampleSize,
	})

	server := bootstrap.NewHTTPServer(bootstrap.ServerDeps{
		Users:     users,
		Imports:   launcher,
		Runs:      runs,
		Metrics:   observability.Handler(registry),
		BodyLimit: cfg.BodyLimit,
	})

	go func() {
		if err := server.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	stopImports()
	launcher.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown failed: %v", err)
	}
}
