package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/auroralab/auroral-backend-go/internal/boundary"
	"github.com/auroralab/auroral-backend-go/internal/config"
	"github.com/auroralab/auroral-backend-go/internal/crossing"
	"github.com/auroralab/auroral-backend-go/internal/database"
	"github.com/auroralab/auroral-backend-go/internal/repository"
	"github.com/auroralab/auroral-backend-go/internal/service"
)

// Batch entry point: runs the full pipeline once over the stored inputs and
// exits. Useful for reprocessing without keeping the API server up.
func main() {
	cfg := config.Load()
	bcfg := config.DefaultBoundaryConfig()

	dbPath := flag.String("db", cfg.DBPath, "path to the sqlite database")
	workers := flag.Int("workers", cfg.Workers, "boundary worker pool size")
	flag.Parse()

	db, err := database.Open(database.Config{Path: *dbPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	sampleRepo := repository.NewSampleRepository(db)
	boundaryRepo := repository.NewBoundaryRepository(db)
	flybyRepo := repository.NewFlybyRepository(db)
	crossingRepo := repository.NewCrossingRepository(db)

	engine := boundary.NewEngine(boundary.NewDetector(bcfg), *workers)

	boundaryService := service.NewBoundaryService(engine, sampleRepo, boundaryRepo)
	flybyService := service.NewFlybyService(bcfg, sampleRepo, flybyRepo)
	crossingService := service.NewCrossingService(
		crossing.NewDetector(bcfg.EpisodeGapSeconds), bcfg.TimeGapLimitSeconds,
		flybyRepo, crossingRepo)
	pipeline := service.NewPipelineService(boundaryService, flybyService, crossingService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pipeline.Run(ctx); err != nil {
		log.Fatal("Pipeline failed:", err)
	}
}
