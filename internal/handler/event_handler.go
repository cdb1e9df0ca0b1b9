package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/geofleet/geotracker/internal/service"
	"github.com/geofleet/geotracker/pkg/response"
)

// EventHandler handles read-side requests for event and journey history
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// History handles GET /api/v1/events/history
func (h *EventHandler) History(c *gin.Context) {
	events, err := h.eventService.GetEventHistory()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, events)
}

// VehicleEvents handles GET /api/v1/events/history/:vehicleId
func (h *EventHandler) VehicleEvents(c *gin.Context) {
	events, err := h.eventService.GetVehicleEvents(c.Param("vehicleId"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, events)
}

// JourneyHistory handles GET /api/v1/events/journeys/history
func (h *EventHandler) JourneyHistory(c *gin.Context) {
	journeys, err := h.eventService.GetJourneyHistory()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, journeys)
}

// VehicleJourneys handles GET /api/v1/events/journeys/history/:vehicleId
func (h *EventHandler) VehicleJourneys(c *gin.Context) {
	journeys, err := h.eventService.GetVehicleJourneys(c.Param("vehicleId"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, journeys)
}
