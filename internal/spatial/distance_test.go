package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// New York to Los Angeles, roughly 3936 km.
	d := HaversineDistance(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 3936000, d, 10000)

	assert.Zero(t, HaversineDistance(40.7128, -74.0060, 40.7128, -74.0060))

	// One degree of latitude is about 111.2 km.
	assert.InDelta(t, 111195, HaversineDistance(0, 0, 1, 0), 100)
}

func TestBearing(t *testing.T) {
	assert.InDelta(t, 0, Bearing(0, 0, 1, 0), 0.01, "north")
	assert.InDelta(t, 90, Bearing(0, 0, 0, 1), 0.01, "east")
	assert.InDelta(t, 180, Bearing(1, 0, 0, 0), 0.01, "south")
	assert.InDelta(t, 270, Bearing(0, 1, 0, 0), 0.01, "west")
}
