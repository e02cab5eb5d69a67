package geo

import (
	"testing"

	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePoint(t *testing.T) {
	p := models.Coordinate{Longitude: 37.6173, Latitude: 55.7558}

	assert.Zero(t, Distance(p, p))
}

func TestDistance_KnownValue(t *testing.T) {
	// Один градус широты на экваторе ~ 111.19 км
	a := models.Coordinate{Longitude: 0, Latitude: 0}
	b := models.Coordinate{Longitude: 0, Latitude: 1}

	assert.InDelta(t, 111195, Distance(a, b), 10)
}

func TestDistance_MoscowToSaintPetersburg(t *testing.T) {
	moscow := models.Coordinate{Longitude: 37.6173, Latitude: 55.7558}
	spb := models.Coordinate{Longitude: 30.3351, Latitude: 59.9343}

	assert.InDelta(t, 634000, Distance(moscow, spb), 2000)
}

func TestDistance_Symmetric(t *testing.T) {
	a := models.Coordinate{Longitude: 37.6173, Latitude: 55.7558}
	b := models.Coordinate{Longitude: 30.3351, Latitude: 59.9343}

	assert.Equal(t, Distance(a, b), Distance(b, a))
}
