package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/service"
	"github.com/geofleet/geotracker/pkg/response"
)

// PositionHandler handles position reports and journey lifecycle requests
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// Report handles POST /api/v1/vehicle-positions
func (h *PositionHandler) Report(c *gin.Context) {
	var req models.VehiclePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid position payload: "+err.Error())
		return
	}

	result, err := h.positionService.ProcessPosition(&req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}

// StartJourney handles POST /api/v1/vehicle-positions/:vehicleId/journeys/start
func (h *PositionHandler) StartJourney(c *gin.Context) {
	journey, err := h.positionService.StartJourney(c.Param("vehicleId"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, journey)
}

// EndJourney handles POST /api/v1/vehicle-positions/:vehicleId/journeys/end
func (h *PositionHandler) EndJourney(c *gin.Context) {
	journey, err := h.positionService.EndJourney(c.Param("vehicleId"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, journey)
}
