package models

import "time"

// Vehicle is a tracked mobile asset. Active marks a vehicle with a journey
// in progress; position reports are rejected while inactive.
type Vehicle struct {
	VehicleID   string `json:"vehicleId"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// VehiclePosition is the latest stored position snapshot for a vehicle.
// WithinGeofence and GeoFenceID link the snapshot to the geofence the vehicle
// was last classified inside, if any. DistanceMeters and Heading are the
// haversine step and bearing from the previous snapshot.
type VehiclePosition struct {
	ID             string    `json:"id"`
	VehicleID      string    `json:"vehicleId"`
	GeoFenceID     string    `json:"geoFenceId,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	WithinGeofence bool      `json:"withinGeofence"`
	DistanceMeters float64   `json:"distanceMeters"`
	Heading        float64   `json:"heading"`
	RecordedAt     time.Time `json:"recordedAt"`
}

// VehicleRequest is the payload for registering or updating a vehicle.
type VehicleRequest struct {
	Make        string `json:"make" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Description string `json:"description"`
}

// VehiclePositionRequest is one raw position report.
type VehiclePositionRequest struct {
	VehicleID string   `json:"vehicleId" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}
