package store

import "github.com/geofleet/geotracker/internal/models"

// GeoFenceCatalog supplies the current set of geofences to the classifier.
// Lookups return (nil, nil) when no geofence matches. Implementations must be
// safe for concurrent readers; geofences are read-mostly.
type GeoFenceCatalog interface {
	FindByID(geoFenceID string) (*models.GeoFence, error)
	FindByName(name string) (*models.GeoFence, error)
	FindAll() ([]models.GeoFence, error)
}
