package engine

import (
	"log"
	"time"

	"github.com/geofleet/geotracker/internal/apperrors"
	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/store"
)

// JourneyCorrelator opens and closes journeys per vehicle and, on close,
// attributes the geofences crossed strictly within the journey's time window.
type JourneyCorrelator struct {
	events store.EventStateStore
}

// NewJourneyCorrelator creates a correlator over the given event store.
func NewJourneyCorrelator(events store.EventStateStore) *JourneyCorrelator {
	return &JourneyCorrelator{events: events}
}

// StartJourney opens a journey for the vehicle. Double-start is not prevented
// here; callers gate it through the vehicle's active flag, and the store
// keeps at most one open journey per vehicle by replace-on-write.
func (j *JourneyCorrelator) StartJourney(vehicleID string, start time.Time) (*models.JourneyEvent, error) {
	event := newJourneyStartEvent(vehicleID, start)
	if err := j.events.PutJourneyEvent(event); err != nil {
		return nil, err
	}
	log.Printf("started journey %s for vehicle %s", event.ID, vehicleID)
	return event, nil
}

// EndJourney closes the vehicle's open journey with the given end time and
// computes the crossed-geofence set and total duration.
func (j *JourneyCorrelator) EndJourney(vehicleID string, end time.Time) (*models.JourneyEvent, error) {
	active, err := j.events.ActiveJourney(vehicleID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, apperrors.NotFound("no active journey for vehicle %s", vehicleID)
	}

	crossed, err := j.geoFencesCrossed(vehicleID, active.StartTime, end)
	if err != nil {
		return nil, err
	}

	closed := newJourneyEndEvent(active, end, crossed)
	if err := j.events.PutJourneyEvent(closed); err != nil {
		return nil, err
	}
	log.Printf("ended journey %s for vehicle %s, crossed %d geofence(s) in %v",
		closed.ID, vehicleID, len(crossed), *closed.Duration)
	return closed, nil
}

// geoFencesCrossed collects the names of closed geofence events lying
// strictly within (start, end): entry after the journey started AND exit
// before it ended. An event that started before the journey, or is still
// open at journey end, is excluded.
func (j *JourneyCorrelator) geoFencesCrossed(vehicleID string, start, end time.Time) ([]string, error) {
	history, err := j.events.GeoFenceEventHistory(vehicleID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var crossed []string
	for i := range history {
		event := &history[i]
		if event.GeoFenceName == nil || event.ExitTime == nil {
			continue
		}
		if !event.EntryTime.After(start) || !event.ExitTime.Before(end) {
			continue
		}
		name := *event.GeoFenceName
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		crossed = append(crossed, name)
	}
	return crossed, nil
}
