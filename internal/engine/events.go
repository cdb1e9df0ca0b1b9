package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/geofleet/geotracker/internal/models"
)

// Transition is the membership change a position report produced.
type Transition string

const (
	// TransitionEntry marks a vehicle moving from outside into a geofence.
	TransitionEntry Transition = "ENTRY"
	// TransitionInside marks a vehicle still inside the geofence it entered.
	TransitionInside Transition = "INSIDE"
	// TransitionExit marks a vehicle leaving the geofence it was inside.
	TransitionExit Transition = "EXIT"
	// TransitionOutside marks a vehicle outside every geofence.
	TransitionOutside Transition = "OUTSIDE"
)

// unauthorizedEntryAlert is attached to entry events for vehicles missing
// from the geofence's allowlist.
const unauthorizedEntryAlert = "Unauthorized entry detected"

func newEntryEvent(pos *models.VehiclePosition, fence *models.GeoFence, authorized bool) *models.GeoFenceEvent {
	name := fence.Name
	var alert *string
	if !authorized {
		msg := unauthorizedEntryAlert
		alert = &msg
	}
	return &models.GeoFenceEvent{
		ID:           uuid.NewString(),
		VehicleID:    pos.VehicleID,
		GeoFenceName: &name,
		EntryTime:    pos.RecordedAt,
		Authorized:   authorized,
		AlertMessage: alert,
	}
}

// newInsideEvent is the continuation of an open entry: it reuses the open
// event's entry time and never carries an alert.
func newInsideEvent(pos *models.VehiclePosition, fence *models.GeoFence, entryTime time.Time) *models.GeoFenceEvent {
	name := fence.Name
	return &models.GeoFenceEvent{
		ID:           uuid.NewString(),
		VehicleID:    pos.VehicleID,
		GeoFenceName: &name,
		EntryTime:    entryTime,
		Authorized:   true,
	}
}

func newExitEvent(pos *models.VehiclePosition, fence *models.GeoFence, entryTime time.Time) *models.GeoFenceEvent {
	name := fence.Name
	exitTime := pos.RecordedAt
	duration := exitTime.Sub(entryTime)
	return &models.GeoFenceEvent{
		ID:             uuid.NewString(),
		VehicleID:      pos.VehicleID,
		GeoFenceName:   &name,
		EntryTime:      entryTime,
		ExitTime:       &exitTime,
		Authorized:     true,
		DurationOfStay: &duration,
	}
}

func newOutsideEvent(pos *models.VehiclePosition) *models.GeoFenceEvent {
	return &models.GeoFenceEvent{
		ID:        uuid.NewString(),
		VehicleID: pos.VehicleID,
		EntryTime: pos.RecordedAt,
	}
}

func newJourneyStartEvent(vehicleID string, start time.Time) *models.JourneyEvent {
	return &models.JourneyEvent{
		ID:        uuid.NewString(),
		VehicleID: vehicleID,
		StartTime: start,
	}
}

func newJourneyEndEvent(active *models.JourneyEvent, end time.Time, crossed []string) *models.JourneyEvent {
	duration := end.Sub(active.StartTime)
	return &models.JourneyEvent{
		ID:               active.ID,
		VehicleID:        active.VehicleID,
		StartTime:        active.StartTime,
		EndTime:          &end,
		GeoFencesCrossed: crossed,
		Duration:         &duration,
	}
}
