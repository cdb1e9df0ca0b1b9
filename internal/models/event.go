package models

import "time"

// GeoFenceEvent records one membership transition for a vehicle.
// An event is open while ExitTime is nil; closing it sets ExitTime and
// DurationOfStay and moves it from the active slot into history.
// A nil GeoFenceName means the vehicle was outside every geofence.
type GeoFenceEvent struct {
	ID             string         `json:"id"`
	VehicleID      string         `json:"vehicleId"`
	GeoFenceName   *string        `json:"geoFenceName"`
	EntryTime      time.Time      `json:"entryTime"`
	ExitTime       *time.Time     `json:"exitTime"`
	Authorized     bool           `json:"authorized"`
	AlertMessage   *string        `json:"alertMessage"`
	DurationOfStay *time.Duration `json:"durationOfStay"`
}

// Open reports whether the event is still active.
func (e *GeoFenceEvent) Open() bool {
	return e.ExitTime == nil
}

// JourneyEvent records one active-duty interval for a vehicle.
// GeoFencesCrossed and Duration are populated only when the journey closes.
type JourneyEvent struct {
	ID               string         `json:"id"`
	VehicleID        string         `json:"vehicleId"`
	StartTime        time.Time      `json:"startTime"`
	EndTime          *time.Time     `json:"endTime"`
	GeoFencesCrossed []string       `json:"geoFencesCrossed"`
	Duration         *time.Duration `json:"duration"`
}

// Open reports whether the journey is still active.
func (j *JourneyEvent) Open() bool {
	return j.EndTime == nil
}
