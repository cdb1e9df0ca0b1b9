package models

// GeoFence is a named polygonal boundary with an authorized-vehicle allowlist.
// PolygonCoordinates holds textual "latitude,longitude" pairs; the order in
// which they arrive is the order the boundary ring is walked.
type GeoFence struct {
	GeoFenceID           string   `json:"geoFenceId"`
	Name                 string   `json:"name"`
	PolygonCoordinates   []string `json:"polygonCoordinates"`
	AuthorizedVehicleIDs []string `json:"authorizedVehicleIds"`
	ValidationStrategy   string   `json:"validationStrategy"`
}

// IsAuthorized reports whether the vehicle is on the geofence's allowlist.
func (g *GeoFence) IsAuthorized(vehicleID string) bool {
	for _, id := range g.AuthorizedVehicleIDs {
		if id == vehicleID {
			return true
		}
	}
	return false
}

// GeoFenceRequest is the payload for creating or updating a geofence.
type GeoFenceRequest struct {
	Name                 string   `json:"name" binding:"required"`
	PolygonCoordinates   []string `json:"polygonCoordinates" binding:"required,min=3,dive,latlngpair"`
	AuthorizedVehicleIDs []string `json:"authorizedVehicleIds"`
}
