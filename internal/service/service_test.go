package service

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geofleet/geotracker/internal/database"
	"github.com/geofleet/geotracker/internal/engine"
	"github.com/geofleet/geotracker/internal/geometry"
	"github.com/geofleet/geotracker/internal/repository"
	"github.com/geofleet/geotracker/internal/store"
)

// fixture wires the full service stack over a throwaway database and a fresh
// in-memory event store.
type fixture struct {
	db           *sql.DB
	vehicleRepo  *repository.VehicleRepository
	geoFenceRepo *repository.GeoFenceRepository
	events       *store.MemoryEventStore

	vehicles  *VehicleService
	geoFences *GeoFenceService
	positions *PositionService
	eventsAPI *EventService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	vehicleRepo := repository.NewVehicleRepository(db)
	geoFenceRepo := repository.NewGeoFenceRepository(db)
	events := store.NewMemoryEventStore()

	classifier := engine.NewClassifier(geoFenceRepo, events, geometry.NewRegistry())
	journeys := engine.NewJourneyCorrelator(events)

	return &fixture{
		db:           db,
		vehicleRepo:  vehicleRepo,
		geoFenceRepo: geoFenceRepo,
		events:       events,
		vehicles:     NewVehicleService(vehicleRepo),
		geoFences:    NewGeoFenceService(geoFenceRepo, vehicleRepo),
		positions:    NewPositionService(vehicleRepo, classifier, journeys),
		eventsAPI:    NewEventService(events),
	}
}

func ptr(f float64) *float64 { return &f }
