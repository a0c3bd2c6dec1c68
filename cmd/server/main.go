package main

import (
	"log"

	"github.com/auroralab/auroral-backend-go/internal/api"
	"github.com/auroralab/auroral-backend-go/internal/boundary"
	"github.com/auroralab/auroral-backend-go/internal/config"
	"github.com/auroralab/auroral-backend-go/internal/crossing"
	"github.com/auroralab/auroral-backend-go/internal/database"
	"github.com/auroralab/auroral-backend-go/internal/handler"
	"github.com/auroralab/auroral-backend-go/internal/repository"
	"github.com/auroralab/auroral-backend-go/internal/service"
)

func main() {
	cfg := config.Load()
	bcfg := config.DefaultBoundaryConfig()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	sampleRepo := repository.NewSampleRepository(db)
	boundaryRepo := repository.NewBoundaryRepository(db)
	flybyRepo := repository.NewFlybyRepository(db)
	crossingRepo := repository.NewCrossingRepository(db)

	engine := boundary.NewEngine(boundary.NewDetector(bcfg), cfg.Workers)

	boundaryService := service.NewBoundaryService(engine, sampleRepo, boundaryRepo)
	flybyService := service.NewFlybyService(bcfg, sampleRepo, flybyRepo)
	crossingService := service.NewCrossingService(
		crossing.NewDetector(bcfg.EpisodeGapSeconds), bcfg.TimeGapLimitSeconds,
		flybyRepo, crossingRepo)
	pipelineService := service.NewPipelineService(boundaryService, flybyService, crossingService)

	router := api.SetupRouter(api.Handlers{
		Boundary: handler.NewBoundaryHandler(boundaryService),
		Flyby:    handler.NewFlybyHandler(flybyService),
		Crossing: handler.NewCrossingHandler(crossingService),
		Process:  handler.NewProcessHandler(pipelineService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
