package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/geofleet/geotracker/internal/apperrors"
	"github.com/geofleet/geotracker/internal/engine"
	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/repository"
	"github.com/geofleet/geotracker/internal/spatial"
)

// PositionService is the hot path: it ingests position reports, runs the
// membership classifier, and drives the journey lifecycle.
//
// Calls for the same vehicle are serialized through a per-vehicle mutex so
// the read-classify-write sequence behaves as one atomic unit; calls for
// different vehicles proceed in parallel.
type PositionService struct {
	vehicleRepo *repository.VehicleRepository
	classifier  *engine.Classifier
	journeys    *engine.JourneyCorrelator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// PositionResult pairs the emitted event with the transition that produced it.
type PositionResult struct {
	Transition engine.Transition     `json:"transition"`
	Event      *models.GeoFenceEvent `json:"event"`
}

// NewPositionService creates a new position service
func NewPositionService(vehicleRepo *repository.VehicleRepository, classifier *engine.Classifier, journeys *engine.JourneyCorrelator) *PositionService {
	return &PositionService{
		vehicleRepo: vehicleRepo,
		classifier:  classifier,
		journeys:    journeys,
		locks:       make(map[string]*sync.Mutex),
	}
}

// vehicleLock returns the mutex serializing work for one vehicle.
func (s *PositionService) vehicleLock(vehicleID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[vehicleID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[vehicleID] = lock
	}
	return lock
}

// StartJourney activates the vehicle, seeds an origin snapshot, and opens a
// journey.
func (s *PositionService) StartJourney(vehicleID string) (*models.JourneyEvent, error) {
	lock := s.vehicleLock(vehicleID)
	lock.Lock()
	defer lock.Unlock()

	vehicle, err := s.requireVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.Active = true
	if err := s.vehicleRepo.Save(vehicle); err != nil {
		return nil, err
	}

	now := time.Now()
	seed := &models.VehiclePosition{
		ID:         uuid.NewString(),
		VehicleID:  vehicleID,
		RecordedAt: now,
	}
	if err := s.vehicleRepo.SavePosition(seed); err != nil {
		return nil, err
	}

	return s.journeys.StartJourney(vehicleID, now)
}

// EndJourney deactivates the vehicle and closes its journey, attributing the
// geofences crossed within the journey window. The journey end time is taken
// from the latest position snapshot.
func (s *PositionService) EndJourney(vehicleID string) (*models.JourneyEvent, error) {
	lock := s.vehicleLock(vehicleID)
	lock.Lock()
	defer lock.Unlock()

	vehicle, err := s.requireVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.Active = false
	if err := s.vehicleRepo.Save(vehicle); err != nil {
		return nil, err
	}

	position, err := s.vehicleRepo.PositionByVehicleID(vehicleID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, apperrors.NotFound("no position recorded for vehicle %s", vehicleID)
	}

	return s.journeys.EndJourney(vehicleID, position.RecordedAt)
}

// ProcessPosition ingests one position report: updates the vehicle's latest
// snapshot and classifies it against the geofence catalog.
func (s *PositionService) ProcessPosition(req *models.VehiclePositionRequest) (*PositionResult, error) {
	vehicleID := req.VehicleID

	lock := s.vehicleLock(vehicleID)
	lock.Lock()
	defer lock.Unlock()

	vehicle, err := s.requireVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Active {
		return nil, apperrors.Validation("vehicle journey not started: %s", vehicleID)
	}

	previous, err := s.vehicleRepo.PositionByVehicleID(vehicleID)
	if err != nil {
		return nil, err
	}

	position := s.nextSnapshot(previous, req)

	event, transition, err := s.classifier.ProcessPosition(position)
	if err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.SavePosition(position); err != nil {
		return nil, fmt.Errorf("failed to persist position snapshot: %w", err)
	}

	return &PositionResult{Transition: transition, Event: event}, nil
}

// nextSnapshot derives the new snapshot from the report, carrying over the
// geofence linkage from the previous one and computing the step distance and
// heading. The journey-start seed carries no real fix, so steps from it are
// not measured.
func (s *PositionService) nextSnapshot(previous *models.VehiclePosition, req *models.VehiclePositionRequest) *models.VehiclePosition {
	position := &models.VehiclePosition{
		ID:         uuid.NewString(),
		VehicleID:  req.VehicleID,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		RecordedAt: time.Now(),
	}

	if previous != nil {
		position.ID = previous.ID
		position.GeoFenceID = previous.GeoFenceID
		position.WithinGeofence = previous.WithinGeofence
		if previous.Latitude != 0 || previous.Longitude != 0 {
			position.DistanceMeters = spatial.HaversineDistance(
				previous.Latitude, previous.Longitude, position.Latitude, position.Longitude)
			position.Heading = spatial.Bearing(
				previous.Latitude, previous.Longitude, position.Latitude, position.Longitude)
		}
	}

	return position
}

func (s *PositionService) requireVehicle(vehicleID string) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.NotFound("vehicle not found: %s", vehicleID)
	}
	return vehicle, nil
}
