package models

import (
	"testing"

	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate_Valid(t *testing.T) {
	c, err := NewCoordinate(37.6173, 55.7558)

	require.NoError(t, err)
	assert.Equal(t, 37.6173, c.Longitude)
	assert.Equal(t, 55.7558, c.Latitude)
	assert.False(t, c.IsZero())
}

func TestNewCoordinate_OutOfRange(t *testing.T) {
	_, err := NewCoordinate(181, 0)
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = NewCoordinate(0, -91)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestCoordinate_IsZero(t *testing.T) {
	assert.True(t, Coordinate{}.IsZero())
	assert.False(t, Coordinate{Longitude: 0.0001, Latitude: 0}.IsZero())
}
