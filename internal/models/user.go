package models

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей
const (
	RoleCitizen     = "citizen"
	RoleVolunteer   = "volunteer"
	RoleCoordinator = "coordinator"
)

// Уровни владения навыком
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// Actor - идентичность и роль действующего пользователя.
// Передается в каждую операцию сервисного слоя; аутентификацией
// занимается внешний слой (JWT middleware), ядро только проверяет права.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsCoordinator сообщает, является ли действующий пользователь координатором
func (a Actor) IsCoordinator() bool {
	return a.Role == RoleCoordinator
}

// VolunteerSkill - навык пользователя. В подборе участвуют только
// подтвержденные (Verified) навыки.
type VolunteerSkill struct {
	Name       string     `json:"skill"`
	Level      string     `json:"level"`
	Verified   bool       `json:"verified"`
	VerifiedBy *uuid.UUID `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// User - пользователь системы (гражданин, волонтер или координатор)
type User struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Role      string           `json:"role"`
	Location  Coordinate       `json:"location"`
	Skills    []VolunteerSkill `json:"skills"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// VolunteerSummary - краткая карточка волонтера для результатов подбора
type VolunteerSummary struct {
	ID       uuid.UUID        `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Phone    string           `json:"phone"`
	Location Coordinate       `json:"location"`
	Skills   []VolunteerSkill `json:"skills"`
}
