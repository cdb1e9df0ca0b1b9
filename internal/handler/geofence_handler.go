package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/service"
	"github.com/geofleet/geotracker/pkg/response"
)

// GeoFenceHandler handles HTTP requests for geofence CRUD
type GeoFenceHandler struct {
	geoFenceService *service.GeoFenceService
}

// NewGeoFenceHandler creates a new geofence handler
func NewGeoFenceHandler(geoFenceService *service.GeoFenceService) *GeoFenceHandler {
	return &GeoFenceHandler{geoFenceService: geoFenceService}
}

// Create handles POST /api/v1/geofences
func (h *GeoFenceHandler) Create(c *gin.Context) {
	var req models.GeoFenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid geofence payload: "+err.Error())
		return
	}

	fence, err := h.geoFenceService.CreateGeoFence(&req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, fence)
}

// List handles GET /api/v1/geofences; an optional ?id= filters by geofence ID.
func (h *GeoFenceHandler) List(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		fence, err := h.geoFenceService.GetGeoFenceByID(id)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, []models.GeoFence{*fence})
		return
	}

	fences, err := h.geoFenceService.GetAllGeoFences()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, fences)
}

// GetByName handles GET /api/v1/geofences/:name
func (h *GeoFenceHandler) GetByName(c *gin.Context) {
	fence, err := h.geoFenceService.GetGeoFenceByName(c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, fence)
}

// Update handles PUT /api/v1/geofences/:name
func (h *GeoFenceHandler) Update(c *gin.Context) {
	var req models.GeoFenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid geofence payload: "+err.Error())
		return
	}

	fence, err := h.geoFenceService.UpdateGeoFence(c.Param("name"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, fence)
}

// Delete handles DELETE /api/v1/geofences/:name
func (h *GeoFenceHandler) Delete(c *gin.Context) {
	if err := h.geoFenceService.DeleteGeoFence(c.Param("name")); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
