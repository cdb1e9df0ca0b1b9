package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofleet/geotracker/internal/config"
	"github.com/geofleet/geotracker/internal/database"
	"github.com/geofleet/geotracker/internal/engine"
	"github.com/geofleet/geotracker/internal/geometry"
	"github.com/geofleet/geotracker/internal/handler"
	"github.com/geofleet/geotracker/internal/repository"
	"github.com/geofleet/geotracker/internal/service"
	"github.com/geofleet/geotracker/internal/store"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:            ":0",
		JWTSecret:       "test-secret",
		AdminUsername:   "admin",
		AdminPassword:   "hunter2",
		TokenTTL:        time.Hour,
		RateLimit:       1000,
		RateLimitWindow: time.Minute,
	}

	vehicleRepo := repository.NewVehicleRepository(db)
	geoFenceRepo := repository.NewGeoFenceRepository(db)
	events := store.NewMemoryEventStore()
	classifier := engine.NewClassifier(geoFenceRepo, events, geometry.NewRegistry())
	journeys := engine.NewJourneyCorrelator(events)

	vehicleService := service.NewVehicleService(vehicleRepo)
	geoFenceService := service.NewGeoFenceService(geoFenceRepo, vehicleRepo)
	positionService := service.NewPositionService(vehicleRepo, classifier, journeys)
	eventService := service.NewEventService(events)

	return SetupRouter(cfg, Handlers{
		Auth:      handler.NewAuthHandler(cfg),
		Vehicles:  handler.NewVehicleHandler(vehicleService),
		GeoFences: handler.NewGeoFenceHandler(geoFenceService),
		Positions: handler.NewPositionHandler(positionService),
		Events:    handler.NewEventHandler(eventService),
	})
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "admin",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)
	return body.Data.Token
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMutatingRoutesRequireAdmin(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/vehicles", "", gin.H{
		"make": "Scania", "model": "R500",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/geofences", "", gin.H{
		"name":               "Depot",
		"polygonCoordinates": []string{"0,0", "0,10", "10,10"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGeoFenceValidation(t *testing.T) {
	r := testRouter(t)
	token := login(t, r)

	// Fewer than three vertices fails binding.
	w := doJSON(r, http.MethodPost, "/api/v1/geofences", token, gin.H{
		"name":               "Depot",
		"polygonCoordinates": []string{"0,0", "0,10"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed pairs fail the latlngpair validator.
	w = doJSON(r, http.MethodPost, "/api/v1/geofences", token, gin.H{
		"name":               "Depot",
		"polygonCoordinates": []string{"0,0", "0,10", "banana"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVehicleAndGeoFenceFlow(t *testing.T) {
	r := testRouter(t)
	token := login(t, r)

	w := doJSON(r, http.MethodPost, "/api/v1/vehicles", token, gin.H{
		"make": "Scania", "model": "R500",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var vehicleResp struct {
		Data struct {
			VehicleID string `json:"vehicleId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vehicleResp))
	vehicleID := vehicleResp.Data.VehicleID
	require.NotEmpty(t, vehicleID)

	w = doJSON(r, http.MethodPost, "/api/v1/geofences", token, gin.H{
		"name":                 "Depot",
		"polygonCoordinates":   []string{"0,0", "0,10", "10,10", "10,0"},
		"authorizedVehicleIds": []string{vehicleID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/geofences/Depot", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "RAY_CASTING")

	// Position reports drive the whole journey without auth.
	w = doJSON(r, http.MethodPost, "/api/v1/vehicle-positions/"+vehicleID+"/journeys/start", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/vehicle-positions", "", gin.H{
		"vehicleId": vehicleID, "latitude": 5.0, "longitude": 5.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ENTRY")

	w = doJSON(r, http.MethodPost, "/api/v1/vehicle-positions", "", gin.H{
		"vehicleId": vehicleID, "latitude": 50.0, "longitude": 50.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EXIT")

	w = doJSON(r, http.MethodPost, "/api/v1/vehicle-positions", "", gin.H{
		"vehicleId": vehicleID, "latitude": 60.0, "longitude": 60.0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/vehicle-positions/"+vehicleID+"/journeys/end", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Depot")

	w = doJSON(r, http.MethodGet, "/api/v1/events/history/"+vehicleID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Depot")

	w = doJSON(r, http.MethodGet, "/api/v1/events/journeys/history/"+vehicleID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetMissingGeoFence(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/geofences/Nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
