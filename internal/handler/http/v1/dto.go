package v1

import (
	"time"

	"github.com/google/uuid"
)

// SkillRequirementDTO - требование к навыку в запросах/ответах
// @Description Требование к навыку инцидента
type SkillRequirementDTO struct {
	Skill    string `json:"skill" validate:"required"`
	MinLevel string `json:"min_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// ReportIncidentRequest DTO для регистрации инцидента
// @Description DTO для регистрации инцидента
type ReportIncidentRequest struct {
	Title          string                `json:"title" validate:"required,min=2,max=255"`
	Description    string                `json:"description,omitempty"`
	Severity       string                `json:"severity,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Latitude       float64               `json:"latitude" validate:"required,latitude"`
	Longitude      float64               `json:"longitude" validate:"required,longitude"`
	Address        string                `json:"address,omitempty"`
	RequiredSkills []SkillRequirementDTO `json:"required_skills,omitempty" validate:"dive"`
	UrgencyLevel   int                   `json:"urgency_level,omitempty" validate:"omitempty,gte=1,lte=10"`
}

// UpdateIncidentStatusRequest DTO для смены статуса инцидента
// @Description DTO для смены статуса инцидента
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reported verified assigned in-progress resolved closed"`
}

// AssignedVolunteerResponse - запись о назначенном волонтере
type AssignedVolunteerResponse struct {
	VolunteerID uuid.UUID `json:"volunteer_id"`
	Status      string    `json:"status"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	Title              string                      `json:"title"`
	Description        string                      `json:"description,omitempty"`
	Severity           string                      `json:"severity"`
	Status             string                      `json:"status"`
	Latitude           float64                     `json:"latitude"`
	Longitude          float64                     `json:"longitude"`
	Address            string                      `json:"address,omitempty"`
	ReportedBy         uuid.UUID                   `json:"reported_by"`
	RequiredSkills     []SkillRequirementDTO       `json:"required_skills"`
	UrgencyLevel       int                         `json:"urgency_level"`
	EscalationLevel    int                         `json:"escalation_level"`
	AssignedVolunteers []AssignedVolunteerResponse `json:"assigned_volunteers"`
	ResolvedAt         *time.Time                  `json:"resolved_at,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// CreateAssignmentRequest DTO для создания назначения
// @Description DTO для создания назначения
type CreateAssignmentRequest struct {
	IncidentID  uuid.UUID `json:"incident_id" validate:"required"`
	VolunteerID uuid.UUID `json:"volunteer_id" validate:"required"`
	Priority    string    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
}

// CompleteAssignmentRequest DTO для завершения назначения
// @Description DTO для завершения назначения
type CompleteAssignmentRequest struct {
	Rating   *int   `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Feedback string `json:"feedback,omitempty"`
}

// MatchedSkillResponse - совпавший навык в снимке назначения
type MatchedSkillResponse struct {
	Skill string `json:"skill"`
	Level string `json:"level"`
}

// NoteResponse - заметка журнала
type NoteResponse struct {
	Text    string    `json:"note"`
	AddedBy uuid.UUID `json:"added_by"`
	AddedAt time.Time `json:"added_at"`
}

// AssignmentResponse DTO для ответа с информацией о назначении
// @Description DTO для ответа с информацией о назначении
type AssignmentResponse struct {
	ID            uuid.UUID              `json:"id"`
	IncidentID    uuid.UUID              `json:"incident_id"`
	VolunteerID   uuid.UUID              `json:"volunteer_id"`
	CoordinatorID *uuid.UUID             `json:"coordinator_id,omitempty"`
	Status        string                 `json:"status"`
	DistanceM     float64                `json:"distance_meters"`
	MatchedSkills []MatchedSkillResponse `json:"matched_skills"`
	Priority      string                 `json:"priority"`
	RequestedAt   time.Time              `json:"requested_at"`
	AcceptedAt    *time.Time             `json:"accepted_at,omitempty"`
	RejectedAt    *time.Time             `json:"rejected_at,omitempty"`
	StartedAt     *time.Time             `json:"started_at,omitempty"`
	CompletedAt   *time.Time             `json:"completed_at,omitempty"`
	CancelledAt   *time.Time             `json:"cancelled_at,omitempty"`
	Rating        *int                   `json:"rating,omitempty"`
	Feedback      string                 `json:"feedback,omitempty"`
	Notes         []NoteResponse         `json:"notes"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// AddNoteRequest DTO для добавления заметки
// @Description DTO для добавления заметки
type AddNoteRequest struct {
	Note string `json:"note" validate:"required"`
}

// VolunteerSkillDTO - навык волонтера
// @Description Навык волонтера
type VolunteerSkillDTO struct {
	Skill      string     `json:"skill" validate:"required"`
	Level      string     `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Verified   bool       `json:"verified"`
	VerifiedBy *uuid.UUID `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// VerifySkillRequest DTO для подтверждения навыка
// @Description DTO для подтверждения навыка
type VerifySkillRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// MatchCandidateResponse - кандидат подбора с оценкой соответствия
// @Description Кандидат подбора волонтеров
type MatchCandidateResponse struct {
	Volunteer     VolunteerSummaryResponse `json:"volunteer"`
	MatchedSkills []MatchedSkillResponse   `json:"matched_skills"`
	Score         int                      `json:"score"`
	DistanceM     float64                  `json:"distance_meters"`
}

// VolunteerSummaryResponse - краткая карточка волонтера
type VolunteerSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}
