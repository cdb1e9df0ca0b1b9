package engine

import (
	"log"

	"github.com/geofleet/geotracker/internal/apperrors"
	"github.com/geofleet/geotracker/internal/geometry"
	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/store"
)

// Classifier turns successive position snapshots into discrete membership
// transitions. The per-vehicle state machine (Outside / InsideOf(geofence))
// is implicit in the event store: a vehicle with an open geofence event is
// inside that geofence, one without is outside.
//
// Callers must serialize ProcessPosition calls per vehicle; calls for
// different vehicles are safe to run in parallel.
type Classifier struct {
	catalog    store.GeoFenceCatalog
	events     store.EventStateStore
	strategies *geometry.Registry
}

// NewClassifier creates a classifier over the given catalog and event store.
func NewClassifier(catalog store.GeoFenceCatalog, events store.EventStateStore, strategies *geometry.Registry) *Classifier {
	return &Classifier{
		catalog:    catalog,
		events:     events,
		strategies: strategies,
	}
}

// ProcessPosition classifies one position snapshot, persists the resulting
// event when the transition calls for it, and updates the snapshot's geofence
// linkage in place (the caller persists the snapshot). Outside events are
// returned but not stored; they never occupy the active slot.
func (c *Classifier) ProcessPosition(pos *models.VehiclePosition) (*models.GeoFenceEvent, Transition, error) {
	active, err := c.events.ActiveGeoFenceEvent(pos.VehicleID)
	if err != nil {
		return nil, "", err
	}

	if active != nil && active.GeoFenceName != nil {
		return c.classifyInside(pos, active)
	}
	return c.classifyOutside(pos)
}

// classifyInside re-tests only the geofence the vehicle was last known to be
// inside. A vehicle cannot move directly between geofences without an
// intervening outside report.
func (c *Classifier) classifyInside(pos *models.VehiclePosition, active *models.GeoFenceEvent) (*models.GeoFenceEvent, Transition, error) {
	name := *active.GeoFenceName
	fence, err := c.catalog.FindByName(name)
	if err != nil {
		return nil, "", err
	}
	if fence == nil {
		// The open event references a geofence that no longer exists; this is
		// state corruption and must be surfaced, not silently recovered.
		return nil, "", apperrors.NotFound("geofence %q referenced by open event for vehicle %s not found", name, pos.VehicleID)
	}

	within, err := c.contains(fence, pos)
	if err != nil {
		return nil, "", err
	}

	if !within {
		event := newExitEvent(pos, fence, active.EntryTime)
		if err := c.events.PutGeoFenceEvent(event); err != nil {
			return nil, "", err
		}
		pos.WithinGeofence = false
		pos.GeoFenceID = ""
		log.Printf("vehicle %s exited geofence %s after %v", pos.VehicleID, fence.Name, *event.DurationOfStay)
		return event, TransitionExit, nil
	}

	event := newInsideEvent(pos, fence, active.EntryTime)
	if err := c.events.PutGeoFenceEvent(event); err != nil {
		return nil, "", err
	}
	pos.WithinGeofence = true
	pos.GeoFenceID = fence.GeoFenceID
	return event, TransitionInside, nil
}

// classifyOutside scans the full catalog; the first geofence reporting
// containment wins. Overlapping geofences are assumed not to coexist
// (enforced weakly at creation time).
func (c *Classifier) classifyOutside(pos *models.VehiclePosition) (*models.GeoFenceEvent, Transition, error) {
	fences, err := c.catalog.FindAll()
	if err != nil {
		return nil, "", err
	}

	for i := range fences {
		fence := &fences[i]
		within, err := c.contains(fence, pos)
		if err != nil {
			return nil, "", err
		}
		if !within {
			continue
		}

		authorized := fence.IsAuthorized(pos.VehicleID)
		event := newEntryEvent(pos, fence, authorized)
		if err := c.events.PutGeoFenceEvent(event); err != nil {
			return nil, "", err
		}
		pos.WithinGeofence = true
		pos.GeoFenceID = fence.GeoFenceID
		log.Printf("vehicle %s entered geofence %s (authorized=%t)", pos.VehicleID, fence.Name, authorized)
		return event, TransitionEntry, nil
	}

	pos.WithinGeofence = false
	pos.GeoFenceID = ""
	return newOutsideEvent(pos), TransitionOutside, nil
}

func (c *Classifier) contains(fence *models.GeoFence, pos *models.VehiclePosition) (bool, error) {
	vertices, err := geometry.ParseVertices(fence.PolygonCoordinates)
	if err != nil {
		return false, apperrors.Validation("geofence %q has malformed boundary: %v", fence.Name, err)
	}
	strategy := c.strategies.Lookup(fence.ValidationStrategy)
	return strategy(pos.Longitude, pos.Latitude, vertices), nil
}
