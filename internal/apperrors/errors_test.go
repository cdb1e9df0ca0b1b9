package apperrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("vehicle %s", "VEH-1")))
	assert.True(t, IsValidation(Validation("bad input")))
	assert.True(t, IsInvariant(Invariant("double open")))

	assert.False(t, IsNotFound(Validation("bad input")))
	assert.False(t, IsValidation(fmt.Errorf("plain error")))
	assert.False(t, IsInvariant(nil))
}

func TestErrorUnwrapsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("processing failed: %w", NotFound("geofence %s", "Depot"))
	assert.True(t, IsNotFound(wrapped))
	assert.Contains(t, wrapped.Error(), "RESOURCE_NOT_FOUND")
}
