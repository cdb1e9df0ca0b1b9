package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofleet/geotracker/internal/apperrors"
	"github.com/geofleet/geotracker/internal/models"
)

func openEvent(id, vehicleID, fence string, entry time.Time) *models.GeoFenceEvent {
	return &models.GeoFenceEvent{
		ID:           id,
		VehicleID:    vehicleID,
		GeoFenceName: &fence,
		EntryTime:    entry,
		Authorized:   true,
	}
}

func closedEvent(id, vehicleID, fence string, entry, exit time.Time) *models.GeoFenceEvent {
	e := openEvent(id, vehicleID, fence, entry)
	e.ExitTime = &exit
	duration := exit.Sub(entry)
	e.DurationOfStay = &duration
	return e
}

func TestActiveGeoFenceEventEmpty(t *testing.T) {
	s := NewMemoryEventStore()

	active, err := s.ActiveGeoFenceEvent("VEH-1")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestPutGeoFenceEventOpensSlot(t *testing.T) {
	s := NewMemoryEventStore()
	entry := time.Now()

	require.NoError(t, s.PutGeoFenceEvent(openEvent("e1", "VEH-1", "Depot", entry)))

	active, err := s.ActiveGeoFenceEvent("VEH-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "e1", active.ID)
	assert.Equal(t, "Depot", *active.GeoFenceName)

	history, err := s.GeoFenceEventHistory("VEH-1")
	require.NoError(t, err)
	assert.Empty(t, history, "open events never appear in history")
}

func TestPutGeoFenceEventSameFenceContinuation(t *testing.T) {
	s := NewMemoryEventStore()
	entry := time.Now()

	require.NoError(t, s.PutGeoFenceEvent(openEvent("e1", "VEH-1", "Depot", entry)))
	require.NoError(t, s.PutGeoFenceEvent(openEvent("e2", "VEH-1", "Depot", entry)))

	active, err := s.ActiveGeoFenceEvent("VEH-1")
	require.NoError(t, err)
	assert.Equal(t, "e2", active.ID, "same-fence continuation replaces the open event")
}

func TestPutGeoFenceEventDoubleOpenDifferentFence(t *testing.T) {
	s := NewMemoryEventStore()
	entry := time.Now()

	require.NoError(t, s.PutGeoFenceEvent(openEvent("e1", "VEH-1", "Depot", entry)))

	err := s.PutGeoFenceEvent(openEvent("e2", "VEH-1", "Warehouse", entry))
	require.Error(t, err)
	assert.True(t, apperrors.IsInvariant(err))

	active, aerr := s.ActiveGeoFenceEvent("VEH-1")
	require.NoError(t, aerr)
	assert.Equal(t, "e1", active.ID, "rejected write leaves the slot untouched")
}

func TestPutGeoFenceEventCloseMovesToHistory(t *testing.T) {
	s := NewMemoryEventStore()
	entry := time.Now()
	exit := entry.Add(5 * time.Minute)

	require.NoError(t, s.PutGeoFenceEvent(openEvent("e1", "VEH-1", "Depot", entry)))
	require.NoError(t, s.PutGeoFenceEvent(closedEvent("e2", "VEH-1", "Depot", entry, exit)))

	active, err := s.ActiveGeoFenceEvent("VEH-1")
	require.NoError(t, err)
	assert.Nil(t, active, "closing clears the active slot")

	history, err := s.GeoFenceEventHistory("VEH-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "e2", history[0].ID)
	assert.Equal(t, 5*time.Minute, *history[0].DurationOfStay)
}

func TestGeoFenceEventHistoryIsolatedPerVehicle(t *testing.T) {
	s := NewMemoryEventStore()
	entry := time.Now()
	exit := entry.Add(time.Minute)

	require.NoError(t, s.PutGeoFenceEvent(closedEvent("e1", "VEH-1", "Depot", entry, exit)))
	require.NoError(t, s.PutGeoFenceEvent(closedEvent("e2", "VEH-2", "Depot", entry, exit)))

	history, err := s.GeoFenceEventHistory("VEH-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "e1", history[0].ID)

	all, err := s.AllGeoFenceEventHistory()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewMemoryEventStore()
	entry := time.Now()

	event := openEvent("e1", "VEH-1", "Depot", entry)
	require.NoError(t, s.PutGeoFenceEvent(event))

	// Mutating the caller's value after the write must not leak in.
	event.ID = "mutated"

	active, err := s.ActiveGeoFenceEvent("VEH-1")
	require.NoError(t, err)
	assert.Equal(t, "e1", active.ID)

	// Mutating the returned value must not leak back.
	active.ID = "mutated-again"
	again, err := s.ActiveGeoFenceEvent("VEH-1")
	require.NoError(t, err)
	assert.Equal(t, "e1", again.ID)
}

func TestPutJourneyEventReplaceOnWrite(t *testing.T) {
	s := NewMemoryEventStore()
	start := time.Now()

	require.NoError(t, s.PutJourneyEvent(&models.JourneyEvent{ID: "j1", VehicleID: "VEH-1", StartTime: start}))
	require.NoError(t, s.PutJourneyEvent(&models.JourneyEvent{ID: "j2", VehicleID: "VEH-1", StartTime: start.Add(time.Minute)}))

	active, err := s.ActiveJourney("VEH-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "j2", active.ID, "open journeys replace on write")
}

func TestPutJourneyEventCloseMovesToHistory(t *testing.T) {
	s := NewMemoryEventStore()
	start := time.Now()
	end := start.Add(time.Hour)
	duration := end.Sub(start)

	require.NoError(t, s.PutJourneyEvent(&models.JourneyEvent{ID: "j1", VehicleID: "VEH-1", StartTime: start}))
	require.NoError(t, s.PutJourneyEvent(&models.JourneyEvent{
		ID:               "j1",
		VehicleID:        "VEH-1",
		StartTime:        start,
		EndTime:          &end,
		GeoFencesCrossed: []string{"Depot"},
		Duration:         &duration,
	}))

	active, err := s.ActiveJourney("VEH-1")
	require.NoError(t, err)
	assert.Nil(t, active)

	history, err := s.JourneyHistory("VEH-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, []string{"Depot"}, history[0].GeoFencesCrossed)

	all, err := s.AllJourneyHistory()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
