package main

import (
	"log"

	"github.com/geofleet/geotracker/internal/api"
	"github.com/geofleet/geotracker/internal/config"
	"github.com/geofleet/geotracker/internal/database"
	"github.com/geofleet/geotracker/internal/engine"
	"github.com/geofleet/geotracker/internal/geometry"
	"github.com/geofleet/geotracker/internal/handler"
	"github.com/geofleet/geotracker/internal/repository"
	"github.com/geofleet/geotracker/internal/service"
	"github.com/geofleet/geotracker/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Repositories
	vehicleRepo := repository.NewVehicleRepository(db)
	geoFenceRepo := repository.NewGeoFenceRepository(db)

	// Core engine
	strategies := geometry.NewRegistry()
	events := store.NewMemoryEventStore()
	classifier := engine.NewClassifier(geoFenceRepo, events, strategies)
	journeys := engine.NewJourneyCorrelator(events)

	// Services
	vehicleService := service.NewVehicleService(vehicleRepo)
	geoFenceService := service.NewGeoFenceService(geoFenceRepo, vehicleRepo)
	positionService := service.NewPositionService(vehicleRepo, classifier, journeys)
	eventService := service.NewEventService(events)

	// Router
	router := api.SetupRouter(cfg, api.Handlers{
		Auth:      handler.NewAuthHandler(cfg),
		Vehicles:  handler.NewVehicleHandler(vehicleService),
		GeoFences: handler.NewGeoFenceHandler(geoFenceService),
		Positions: handler.NewPositionHandler(positionService),
		Events:    handler.NewEventHandler(eventService),
	})

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
