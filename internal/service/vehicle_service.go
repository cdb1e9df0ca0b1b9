package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/geofleet/geotracker/internal/apperrors"
	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/repository"
)

// VehicleService handles business logic for vehicle registration and lifecycle
type VehicleService struct {
	vehicleRepo *repository.VehicleRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo *repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// RegisterVehicle registers a new vehicle. Vehicles start inactive; a journey
// start activates them.
func (s *VehicleService) RegisterVehicle(req *models.VehicleRequest) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{
		VehicleID:   "VEH-" + uuid.NewString(),
		Make:        req.Make,
		Model:       req.Model,
		Description: req.Description,
		Active:      false,
	}

	if err := s.vehicleRepo.Save(vehicle); err != nil {
		return nil, fmt.Errorf("failed to register vehicle: %w", err)
	}

	log.Printf("registered vehicle %s", vehicle.VehicleID)
	return vehicle, nil
}

// GetVehicle fetches a vehicle by ID
func (s *VehicleService) GetVehicle(vehicleID string) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.NotFound("vehicle not found: %s", vehicleID)
	}
	return vehicle, nil
}

// GetAllVehicles fetches all registered vehicles
func (s *VehicleService) GetAllVehicles() ([]models.Vehicle, error) {
	return s.vehicleRepo.FindAll()
}

// UpdateVehicle updates a vehicle's details; the active flag is owned by the
// journey lifecycle and is not touched here.
func (s *VehicleService) UpdateVehicle(vehicleID string, req *models.VehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Description = req.Description

	if err := s.vehicleRepo.Save(vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	log.Printf("updated vehicle %s", vehicleID)
	return vehicle, nil
}

// DeleteVehicle deletes a vehicle by ID
func (s *VehicleService) DeleteVehicle(vehicleID string) error {
	if _, err := s.GetVehicle(vehicleID); err != nil {
		return err
	}

	if err := s.vehicleRepo.DeleteByID(vehicleID); err != nil {
		return err
	}

	log.Printf("deleted vehicle %s", vehicleID)
	return nil
}
