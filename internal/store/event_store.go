package store

import (
	"sync"

	"github.com/geofleet/geotracker/internal/apperrors"
	"github.com/geofleet/geotracker/internal/models"
)

// EventStateStore holds per-vehicle transition state: at most one open
// GeoFenceEvent and one open JourneyEvent per vehicle, plus append-only
// closed history for both. Placement is decided from the record itself: an
// event without a terminal timestamp occupies the active slot, a closed one
// clears the slot and is appended to history.
type EventStateStore interface {
	// ActiveGeoFenceEvent returns the open geofence event for the vehicle,
	// or nil when the vehicle is outside all geofences.
	ActiveGeoFenceEvent(vehicleID string) (*models.GeoFenceEvent, error)

	// PutGeoFenceEvent stores an event. Opening a second active event for a
	// vehicle already inside a different geofence is an invariant violation.
	PutGeoFenceEvent(event *models.GeoFenceEvent) error

	// GeoFenceEventHistory returns the closed events for one vehicle, oldest
	// first.
	GeoFenceEventHistory(vehicleID string) ([]models.GeoFenceEvent, error)

	// AllGeoFenceEventHistory returns the closed events for every vehicle.
	AllGeoFenceEventHistory() ([]models.GeoFenceEvent, error)

	// ActiveJourney returns the open journey for the vehicle, or nil.
	ActiveJourney(vehicleID string) (*models.JourneyEvent, error)

	// PutJourneyEvent stores a journey. Open journeys replace-on-write; a
	// closed journey clears the active slot and is appended to history.
	PutJourneyEvent(event *models.JourneyEvent) error

	// JourneyHistory returns the closed journeys for one vehicle, oldest
	// first.
	JourneyHistory(vehicleID string) ([]models.JourneyEvent, error)

	// AllJourneyHistory returns the closed journeys for every vehicle.
	AllJourneyHistory() ([]models.JourneyEvent, error)
}

// MemoryEventStore is an in-memory EventStateStore, safe for concurrent use.
// Values are copied in and out so callers never share memory with the store.
type MemoryEventStore struct {
	mu             sync.RWMutex
	activeEvents   map[string]models.GeoFenceEvent
	eventHistory   map[string][]models.GeoFenceEvent
	activeJourneys map[string]models.JourneyEvent
	journeyHistory map[string][]models.JourneyEvent
}

// NewMemoryEventStore creates an empty in-memory event store.
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{
		activeEvents:   make(map[string]models.GeoFenceEvent),
		eventHistory:   make(map[string][]models.GeoFenceEvent),
		activeJourneys: make(map[string]models.JourneyEvent),
		journeyHistory: make(map[string][]models.JourneyEvent),
	}
}

// ActiveGeoFenceEvent returns a copy of the open event for the vehicle.
func (s *MemoryEventStore) ActiveGeoFenceEvent(vehicleID string) (*models.GeoFenceEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.activeEvents[vehicleID]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

// PutGeoFenceEvent stores a geofence event.
func (s *MemoryEventStore) PutGeoFenceEvent(event *models.GeoFenceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vehicleID := event.VehicleID
	if event.Open() {
		if current, ok := s.activeEvents[vehicleID]; ok && !sameGeoFence(&current, event) {
			return apperrors.Invariant(
				"vehicle %s already has an open event for geofence %s", vehicleID, fenceName(&current))
		}
		s.activeEvents[vehicleID] = *event
		return nil
	}

	delete(s.activeEvents, vehicleID)
	s.eventHistory[vehicleID] = append(s.eventHistory[vehicleID], *event)
	return nil
}

// GeoFenceEventHistory returns the closed events for one vehicle.
func (s *MemoryEventStore) GeoFenceEventHistory(vehicleID string) ([]models.GeoFenceEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.eventHistory[vehicleID]
	out := make([]models.GeoFenceEvent, len(history))
	copy(out, history)
	return out, nil
}

// AllGeoFenceEventHistory returns the closed events for every vehicle.
func (s *MemoryEventStore) AllGeoFenceEventHistory() ([]models.GeoFenceEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.GeoFenceEvent
	for _, history := range s.eventHistory {
		out = append(out, history...)
	}
	return out, nil
}

// ActiveJourney returns a copy of the open journey for the vehicle.
func (s *MemoryEventStore) ActiveJourney(vehicleID string) (*models.JourneyEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.activeJourneys[vehicleID]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

// PutJourneyEvent stores a journey event.
func (s *MemoryEventStore) PutJourneyEvent(event *models.JourneyEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vehicleID := event.VehicleID
	if event.Open() {
		// Replace-on-write: double-start is the caller's concern, the store
		// only guarantees at most one open journey per vehicle.
		s.activeJourneys[vehicleID] = *event
		return nil
	}

	delete(s.activeJourneys, vehicleID)
	s.journeyHistory[vehicleID] = append(s.journeyHistory[vehicleID], *event)
	return nil
}

// JourneyHistory returns the closed journeys for one vehicle.
func (s *MemoryEventStore) JourneyHistory(vehicleID string) ([]models.JourneyEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.journeyHistory[vehicleID]
	out := make([]models.JourneyEvent, len(history))
	copy(out, history)
	return out, nil
}

// AllJourneyHistory returns the closed journeys for every vehicle.
func (s *MemoryEventStore) AllJourneyHistory() ([]models.JourneyEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.JourneyEvent
	for _, history := range s.journeyHistory {
		out = append(out, history...)
	}
	return out, nil
}

func sameGeoFence(a, b *models.GeoFenceEvent) bool {
	return fenceName(a) == fenceName(b)
}

func fenceName(e *models.GeoFenceEvent) string {
	if e.GeoFenceName == nil {
		return ""
	}
	return *e.GeoFenceName
}
