package service

import (
	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/store"
)

// EventService exposes geofence event and journey history for the read-side
// API.
type EventService struct {
	events store.EventStateStore
}

// NewEventService creates a new event service
func NewEventService(events store.EventStateStore) *EventService {
	return &EventService{events: events}
}

// GetEventHistory returns all closed geofence events across vehicles.
func (s *EventService) GetEventHistory() ([]models.GeoFenceEvent, error) {
	return s.events.AllGeoFenceEventHistory()
}

// GetVehicleEvents returns a vehicle's closed geofence events plus its open
// event, if any.
func (s *EventService) GetVehicleEvents(vehicleID string) ([]models.GeoFenceEvent, error) {
	history, err := s.events.GeoFenceEventHistory(vehicleID)
	if err != nil {
		return nil, err
	}

	active, err := s.events.ActiveGeoFenceEvent(vehicleID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		history = append(history, *active)
	}

	return history, nil
}

// GetJourneyHistory returns all closed journeys across vehicles.
func (s *EventService) GetJourneyHistory() ([]models.JourneyEvent, error) {
	return s.events.AllJourneyHistory()
}

// GetVehicleJourneys returns a vehicle's closed journeys plus its open
// journey, if any.
func (s *EventService) GetVehicleJourneys(vehicleID string) ([]models.JourneyEvent, error) {
	history, err := s.events.JourneyHistory(vehicleID)
	if err != nil {
		return nil, err
	}

	active, err := s.events.ActiveJourney(vehicleID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		history = append(history, *active)
	}

	return history, nil
}
