package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/geofleet/geotracker/internal/apperrors"
	"github.com/geofleet/geotracker/internal/geometry"
	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/repository"
)

// GeoFenceService handles business logic for geofence registration and
// lifecycle. All validation runs before any state mutation.
type GeoFenceService struct {
	geoFenceRepo *repository.GeoFenceRepository
	vehicleRepo  *repository.VehicleRepository
}

// NewGeoFenceService creates a new geofence service
func NewGeoFenceService(geoFenceRepo *repository.GeoFenceRepository, vehicleRepo *repository.VehicleRepository) *GeoFenceService {
	return &GeoFenceService{
		geoFenceRepo: geoFenceRepo,
		vehicleRepo:  vehicleRepo,
	}
}

// CreateGeoFence validates and creates a new geofence with a GEO- prefixed ID
// and the default containment strategy.
func (s *GeoFenceService) CreateGeoFence(req *models.GeoFenceRequest) (*models.GeoFence, error) {
	if err := s.validateNameAvailable(req.Name); err != nil {
		return nil, err
	}
	if err := s.validateBoundary(req.PolygonCoordinates, ""); err != nil {
		return nil, err
	}
	if err := s.validateAuthorizedVehicleIDs(req.AuthorizedVehicleIDs); err != nil {
		return nil, err
	}

	fence := &models.GeoFence{
		GeoFenceID:           "GEO-" + uuid.NewString(),
		Name:                 req.Name,
		PolygonCoordinates:   req.PolygonCoordinates,
		AuthorizedVehicleIDs: req.AuthorizedVehicleIDs,
		ValidationStrategy:   geometry.StrategyRayCasting,
	}

	if err := s.geoFenceRepo.Save(fence); err != nil {
		return nil, fmt.Errorf("failed to create geofence: %w", err)
	}

	log.Printf("created geofence %s (%s)", fence.Name, fence.GeoFenceID)
	return fence, nil
}

// UpdateGeoFence validates and updates the geofence known by name.
func (s *GeoFenceService) UpdateGeoFence(name string, req *models.GeoFenceRequest) (*models.GeoFence, error) {
	fence, err := s.GetGeoFenceByName(name)
	if err != nil {
		return nil, err
	}

	if fence.Name != req.Name {
		if err := s.validateNameAvailable(req.Name); err != nil {
			return nil, err
		}
	}
	if err := s.validateBoundary(req.PolygonCoordinates, fence.GeoFenceID); err != nil {
		return nil, err
	}
	if err := s.validateAuthorizedVehicleIDs(req.AuthorizedVehicleIDs); err != nil {
		return nil, err
	}

	fence.Name = req.Name
	fence.PolygonCoordinates = req.PolygonCoordinates
	fence.AuthorizedVehicleIDs = req.AuthorizedVehicleIDs

	if err := s.geoFenceRepo.Save(fence); err != nil {
		return nil, fmt.Errorf("failed to update geofence: %w", err)
	}

	log.Printf("updated geofence %s (%s)", fence.Name, fence.GeoFenceID)
	return fence, nil
}

// GetGeoFenceByID fetches a geofence by its ID
func (s *GeoFenceService) GetGeoFenceByID(geoFenceID string) (*models.GeoFence, error) {
	fence, err := s.geoFenceRepo.FindByID(geoFenceID)
	if err != nil {
		return nil, err
	}
	if fence == nil {
		return nil, apperrors.NotFound("geofence not found: %s", geoFenceID)
	}
	return fence, nil
}

// GetGeoFenceByName fetches a geofence by its unique name
func (s *GeoFenceService) GetGeoFenceByName(name string) (*models.GeoFence, error) {
	fence, err := s.geoFenceRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if fence == nil {
		return nil, apperrors.NotFound("geofence not found: %s", name)
	}
	return fence, nil
}

// GetAllGeoFences fetches all geofences
func (s *GeoFenceService) GetAllGeoFences() ([]models.GeoFence, error) {
	return s.geoFenceRepo.FindAll()
}

// DeleteGeoFence deletes a geofence by name
func (s *GeoFenceService) DeleteGeoFence(name string) error {
	if _, err := s.GetGeoFenceByName(name); err != nil {
		return err
	}

	if err := s.geoFenceRepo.DeleteByName(name); err != nil {
		return err
	}

	log.Printf("deleted geofence %s", name)
	return nil
}

func (s *GeoFenceService) validateNameAvailable(name string) error {
	existing, err := s.geoFenceRepo.FindByName(name)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.Validation("geofence with name %q already exists", name)
	}
	return nil
}

// validateBoundary checks the polygon parses and does not collide with an
// existing geofence's footprint. excludeID skips the geofence being updated.
func (s *GeoFenceService) validateBoundary(coords []string, excludeID string) error {
	if _, err := geometry.ParseVertices(coords); err != nil {
		return apperrors.Validation("invalid polygon coordinates: %v", err)
	}

	existing, err := s.geoFenceRepo.FindAll()
	if err != nil {
		return err
	}

	footprint := coordinateFootprint(coords)
	for i := range existing {
		if existing[i].GeoFenceID == excludeID {
			continue
		}
		if footprintsEqual(footprint, coordinateFootprint(existing[i].PolygonCoordinates)) {
			return apperrors.Validation("polygon coordinates intersect with existing geofence %q", existing[i].Name)
		}
	}
	return nil
}

func (s *GeoFenceService) validateAuthorizedVehicleIDs(vehicleIDs []string) error {
	var invalid []string
	for _, id := range vehicleIDs {
		vehicle, err := s.vehicleRepo.FindByID(id)
		if err != nil {
			return err
		}
		if vehicle == nil {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return apperrors.Validation("invalid vehicle IDs: %s", strings.Join(invalid, ", "))
	}
	return nil
}

// coordinateFootprint flattens a boundary into the set of its coordinate
// components. Two boundaries "overlap" when their footprints are equal. The
// check is deliberately weak; callers may depend on its permissiveness.
func coordinateFootprint(coords []string) map[string]struct{} {
	footprint := make(map[string]struct{})
	for _, coord := range coords {
		cleaned := strings.NewReplacer("(", "", ")", "").Replace(coord)
		for _, part := range strings.Split(cleaned, ",") {
			footprint[strings.TrimSpace(part)] = struct{}{}
		}
	}
	return footprint
}

func footprintsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
