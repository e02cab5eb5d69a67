package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы назначения
const (
	AssignmentStatusPending    = "pending"
	AssignmentStatusAccepted   = "accepted"
	AssignmentStatusRejected   = "rejected"
	AssignmentStatusInProgress = "in-progress"
	AssignmentStatusCompleted  = "completed"
	AssignmentStatusCancelled  = "cancelled"
)

// Приоритеты назначения
const (
	AssignmentPriorityLow    = "low"
	AssignmentPriorityMedium = "medium"
	AssignmentPriorityHigh   = "high"
	AssignmentPriorityUrgent = "urgent"
)

// MatchedSkill - снимок совпавшего навыка на момент создания назначения.
// Не пересчитывается при последующих изменениях навыков волонтера.
type MatchedSkill struct {
	Skill string `json:"skill"`
	Level string `json:"level"`
}

// Assignment - связь волонтера с инцидентом, имеет собственный жизненный цикл:
// pending -> accepted -> in-progress -> completed, ветка pending -> rejected,
// из любого активного статуса административная отмена в cancelled.
type Assignment struct {
	ID            uuid.UUID      `json:"id"`
	IncidentID    uuid.UUID      `json:"incident_id"`
	VolunteerID   uuid.UUID      `json:"volunteer_id"`
	CoordinatorID *uuid.UUID     `json:"coordinator_id,omitempty"`
	Status        string         `json:"status"`
	DistanceM     float64        `json:"distance_meters"`
	MatchedSkills []MatchedSkill `json:"matched_skills"`
	Priority      string         `json:"priority"`
	RequestedAt   time.Time      `json:"requested_at"`
	AcceptedAt    *time.Time     `json:"accepted_at,omitempty"`
	RejectedAt    *time.Time     `json:"rejected_at,omitempty"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	CancelledAt   *time.Time     `json:"cancelled_at,omitempty"`
	Rating        *int           `json:"rating,omitempty"`
	Feedback      string         `json:"feedback,omitempty"`
	Notes         []Note         `json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// IsTerminal сообщает, находится ли назначение в конечном статусе
func (a *Assignment) IsTerminal() bool {
	switch a.Status {
	case AssignmentStatusCompleted, AssignmentStatusRejected, AssignmentStatusCancelled:
		return true
	}
	return false
}
