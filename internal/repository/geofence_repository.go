package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/geofleet/geotracker/internal/models"
)

// GeoFenceRepository handles database operations for geofences. It is the
// GeoFenceCatalog the classifier consults; reads run concurrently.
type GeoFenceRepository struct {
	db *sql.DB
}

// NewGeoFenceRepository creates a new geofence repository
func NewGeoFenceRepository(db *sql.DB) *GeoFenceRepository {
	return &GeoFenceRepository{db: db}
}

const geoFenceColumns = "geofence_id, name, polygon_coordinates, authorized_vehicle_ids, validation_strategy"

// FindByID retrieves a geofence by its ID, or (nil, nil) when absent.
func (r *GeoFenceRepository) FindByID(geoFenceID string) (*models.GeoFence, error) {
	query := "SELECT " + geoFenceColumns + " FROM geofences WHERE geofence_id = ?"
	return r.scanOne(r.db.QueryRow(query, geoFenceID))
}

// FindByName retrieves a geofence by its unique name, or (nil, nil) when absent.
func (r *GeoFenceRepository) FindByName(name string) (*models.GeoFence, error) {
	query := "SELECT " + geoFenceColumns + " FROM geofences WHERE name = ?"
	return r.scanOne(r.db.QueryRow(query, name))
}

// FindAll retrieves all geofences
func (r *GeoFenceRepository) FindAll() ([]models.GeoFence, error) {
	query := "SELECT " + geoFenceColumns + " FROM geofences ORDER BY created_at"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query geofences: %w", err)
	}
	defer rows.Close()

	var fences []models.GeoFence
	for rows.Next() {
		var g models.GeoFence
		var coords, vehicleIDs string
		if err := rows.Scan(&g.GeoFenceID, &g.Name, &coords, &vehicleIDs, &g.ValidationStrategy); err != nil {
			return nil, fmt.Errorf("failed to scan geofence: %w", err)
		}
		if err := decodeGeoFenceFields(&g, coords, vehicleIDs); err != nil {
			return nil, err
		}
		fences = append(fences, g)
	}

	return fences, rows.Err()
}

// Save inserts or updates a geofence
func (r *GeoFenceRepository) Save(g *models.GeoFence) error {
	coords, err := json.Marshal(g.PolygonCoordinates)
	if err != nil {
		return fmt.Errorf("failed to encode polygon coordinates: %w", err)
	}
	vehicleIDs, err := json.Marshal(g.AuthorizedVehicleIDs)
	if err != nil {
		return fmt.Errorf("failed to encode authorized vehicle ids: %w", err)
	}

	query := `INSERT INTO geofences (geofence_id, name, polygon_coordinates, authorized_vehicle_ids, validation_strategy)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(geofence_id) DO UPDATE SET
			name = excluded.name,
			polygon_coordinates = excluded.polygon_coordinates,
			authorized_vehicle_ids = excluded.authorized_vehicle_ids,
			validation_strategy = excluded.validation_strategy,
			updated_at = datetime('now')`

	if _, err := r.db.Exec(query, g.GeoFenceID, g.Name, string(coords), string(vehicleIDs), g.ValidationStrategy); err != nil {
		return fmt.Errorf("failed to save geofence: %w", err)
	}

	return nil
}

// DeleteByName deletes a geofence by name
func (r *GeoFenceRepository) DeleteByName(name string) error {
	if _, err := r.db.Exec("DELETE FROM geofences WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete geofence: %w", err)
	}
	return nil
}

func (r *GeoFenceRepository) scanOne(row *sql.Row) (*models.GeoFence, error) {
	var g models.GeoFence
	var coords, vehicleIDs string
	err := row.Scan(&g.GeoFenceID, &g.Name, &coords, &vehicleIDs, &g.ValidationStrategy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get geofence: %w", err)
	}
	if err := decodeGeoFenceFields(&g, coords, vehicleIDs); err != nil {
		return nil, err
	}
	return &g, nil
}

func decodeGeoFenceFields(g *models.GeoFence, coords, vehicleIDs string) error {
	if err := json.Unmarshal([]byte(coords), &g.PolygonCoordinates); err != nil {
		return fmt.Errorf("failed to decode polygon coordinates: %w", err)
	}
	if err := json.Unmarshal([]byte(vehicleIDs), &g.AuthorizedVehicleIDs); err != nil {
		return fmt.Errorf("failed to decode authorized vehicle ids: %w", err)
	}
	return nil
}
