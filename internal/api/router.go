package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/geofleet/geotracker/internal/config"
	"github.com/geofleet/geotracker/internal/handler"
	"github.com/geofleet/geotracker/internal/middleware"
)

// Handlers bundles the HTTP handlers wired into the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Vehicles  *handler.VehicleHandler
	GeoFences *handler.GeoFenceHandler
	Positions *handler.PositionHandler
	Events    *handler.EventHandler
}

// SetupRouter builds the gin engine with middleware and all API routes.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "GeoTracker API is running",
		})
	})

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireAdmin()

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", h.Vehicles.List)
			vehicles.GET("/:vehicleId", h.Vehicles.Get)
			vehicles.POST("", authRequired, adminOnly, h.Vehicles.Register)
			vehicles.PUT("/:vehicleId", authRequired, adminOnly, h.Vehicles.Update)
			vehicles.DELETE("/:vehicleId", authRequired, adminOnly, h.Vehicles.Delete)
		}

		geofences := api.Group("/geofences")
		{
			geofences.GET("", h.GeoFences.List)
			geofences.GET("/:name", h.GeoFences.GetByName)
			geofences.POST("", authRequired, adminOnly, h.GeoFences.Create)
			geofences.PUT("/:name", authRequired, adminOnly, h.GeoFences.Update)
			geofences.DELETE("/:name", authRequired, adminOnly, h.GeoFences.Delete)
		}

		positions := api.Group("/vehicle-positions")
		{
			positions.POST("", h.Positions.Report)
			positions.POST("/:vehicleId/journeys/start", h.Positions.StartJourney)
			positions.POST("/:vehicleId/journeys/end", h.Positions.EndJourney)
		}

		events := api.Group("/events")
		{
			events.GET("/history", h.Events.History)
			events.GET("/history/:vehicleId", h.Events.VehicleEvents)
			events.GET("/journeys/history", h.Events.JourneyHistory)
			events.GET("/journeys/history/:vehicleId", h.Events.VehicleJourneys)
		}
	}

	return r
}

// registerValidators adds custom binding validators used by request models.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// latlngpair accepts "lat,lng" with optional surrounding parentheses.
	_ = v.RegisterValidation("latlngpair", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		s = strings.TrimPrefix(s, "(")
		s = strings.TrimSuffix(s, ")")

		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return false
		}
		for _, p := range parts {
			if _, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
				return false
			}
		}
		return true
	})
}
