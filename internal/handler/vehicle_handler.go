package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/geofleet/geotracker/internal/models"
	"github.com/geofleet/geotracker/internal/service"
	"github.com/geofleet/geotracker/pkg/response"
)

// VehicleHandler handles HTTP requests for vehicle CRUD
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// Register handles POST /api/v1/vehicles
func (h *VehicleHandler) Register(c *gin.Context) {
	var req models.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid vehicle payload: "+err.Error())
		return
	}

	vehicle, err := h.vehicleService.RegisterVehicle(&req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, vehicle)
}

// Get handles GET /api/v1/vehicles/:vehicleId
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Param("vehicleId"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, vehicle)
}

// List handles GET /api/v1/vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleService.GetAllVehicles()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, vehicles)
}

// Update handles PUT /api/v1/vehicles/:vehicleId
func (h *VehicleHandler) Update(c *gin.Context) {
	var req models.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid vehicle payload: "+err.Error())
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Param("vehicleId"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, vehicle)
}

// Delete handles DELETE /api/v1/vehicles/:vehicleId
func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Param("vehicleId")); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
