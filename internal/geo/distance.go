package geo

import (
	"math"

	"github.com/shenikar/relief_coordination_system/internal/models"
)

// earthRadiusM - радиус Земли в метрах
const earthRadiusM = 6371000

// Distance возвращает расстояние по дуге большого круга между двумя
// координатами в метрах (формула гаверсинуса). Детерминированная,
// симметричная, без побочных эффектов.
func Distance(a, b models.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}
