package models

import "github.com/shenikar/relief_coordination_system/internal/apperrors"

// Coordinate - неизменяемая пара (долгота, широта) в градусах
type Coordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// NewCoordinate создает координату с проверкой диапазонов
func NewCoordinate(longitude, latitude float64) (Coordinate, error) {
	if longitude < -180 || longitude > 180 {
		return Coordinate{}, apperrors.NewInvalidInput("longitude must be between -180 and 180")
	}
	if latitude < -90 || latitude > 90 {
		return Coordinate{}, apperrors.NewInvalidInput("latitude must be between -90 and 90")
	}
	return Coordinate{Longitude: longitude, Latitude: latitude}, nil
}

// IsZero сообщает, что координата не задана. Точка (0,0) лежит в океане
// и не используется как валидное местоположение инцидента.
func (c Coordinate) IsZero() bool {
	return c.Longitude == 0 && c.Latitude == 0
}
