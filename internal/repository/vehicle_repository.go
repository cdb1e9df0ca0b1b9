package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/geofleet/geotracker/internal/models"
)

// VehicleRepository handles database operations for vehicles and their
// latest position snapshots.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// FindByID retrieves a vehicle by ID, or (nil, nil) when absent.
func (r *VehicleRepository) FindByID(vehicleID string) (*models.Vehicle, error) {
	query := `SELECT vehicle_id, make, model, description, active FROM vehicles WHERE vehicle_id = ?`

	var v models.Vehicle
	err := r.db.QueryRow(query, vehicleID).Scan(&v.VehicleID, &v.Make, &v.Model, &v.Description, &v.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &v, nil
}

// FindAll retrieves all vehicles
func (r *VehicleRepository) FindAll() ([]models.Vehicle, error) {
	rows, err := r.db.Query(`SELECT vehicle_id, make, model, description, active FROM vehicles ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.VehicleID, &v.Make, &v.Model, &v.Description, &v.Active); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// Save inserts or updates a vehicle
func (r *VehicleRepository) Save(v *models.Vehicle) error {
	query := `INSERT INTO vehicles (vehicle_id, make, model, description, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(vehicle_id) DO UPDATE SET
			make = excluded.make,
			model = excluded.model,
			description = excluded.description,
			active = excluded.active,
			updated_at = datetime('now')`

	if _, err := r.db.Exec(query, v.VehicleID, v.Make, v.Model, v.Description, v.Active); err != nil {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}

	return nil
}

// DeleteByID deletes a vehicle by ID
func (r *VehicleRepository) DeleteByID(vehicleID string) error {
	if _, err := r.db.Exec("DELETE FROM vehicles WHERE vehicle_id = ?", vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

// PositionByVehicleID retrieves the latest position snapshot for a vehicle,
// or (nil, nil) when none has been recorded.
func (r *VehicleRepository) PositionByVehicleID(vehicleID string) (*models.VehiclePosition, error) {
	query := `SELECT id, vehicle_id, latitude, longitude, COALESCE(geofence_id, ''), within_geofence, distance_meters, heading, recorded_at
		FROM vehicle_positions WHERE vehicle_id = ?`

	var p models.VehiclePosition
	var recordedAt string
	err := r.db.QueryRow(query, vehicleID).Scan(
		&p.ID, &p.VehicleID, &p.Latitude, &p.Longitude, &p.GeoFenceID,
		&p.WithinGeofence, &p.DistanceMeters, &p.Heading, &recordedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle position: %w", err)
	}

	p.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
	}

	return &p, nil
}

// SavePosition upserts the latest position snapshot for a vehicle
func (r *VehicleRepository) SavePosition(p *models.VehiclePosition) error {
	query := `INSERT INTO vehicle_positions (vehicle_id, id, latitude, longitude, geofence_id, within_geofence, distance_meters, heading, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(vehicle_id) DO UPDATE SET
			id = excluded.id,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			geofence_id = excluded.geofence_id,
			within_geofence = excluded.within_geofence,
			distance_meters = excluded.distance_meters,
			heading = excluded.heading,
			recorded_at = excluded.recorded_at`

	recordedAt := p.RecordedAt.Format(time.RFC3339Nano)
	if _, err := r.db.Exec(query, p.VehicleID, p.ID, p.Latitude, p.Longitude, p.GeoFenceID,
		p.WithinGeofence, p.DistanceMeters, p.Heading, recordedAt); err != nil {
		return fmt.Errorf("failed to save vehicle position: %w", err)
	}

	return nil
}
