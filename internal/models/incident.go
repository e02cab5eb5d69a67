package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы инцидента
const (
	IncidentStatusReported   = "reported"
	IncidentStatusVerified   = "verified"
	IncidentStatusAssigned   = "assigned"
	IncidentStatusInProgress = "in-progress"
	IncidentStatusResolved   = "resolved"
	IncidentStatusClosed     = "closed"
)

// Серьезность инцидента
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Приоритеты требуемых навыков
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// MaxEscalationLevel - предел счетчика эскалации
const MaxEscalationLevel = 5

// SkillRequirement - требование к навыку для инцидента
type SkillRequirement struct {
	Skill    string `json:"skill"`
	MinLevel string `json:"min_level"`
	Priority string `json:"priority"`
}

// AssignedVolunteer - денормализованная запись о назначенном волонтере,
// принадлежит инциденту и синхронизируется с Assignment переходами
type AssignedVolunteer struct {
	VolunteerID uuid.UUID `json:"volunteer_id"`
	Status      string    `json:"status"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// Note - запись в журнале заметок (append-only)
type Note struct {
	Text    string    `json:"note"`
	AddedBy uuid.UUID `json:"added_by"`
	AddedAt time.Time `json:"added_at"`
}

// Incident - зарегистрированное чрезвычайное событие
type Incident struct {
	ID                 uuid.UUID           `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Severity           string              `json:"severity"`
	Status             string              `json:"status"`
	Location           Coordinate          `json:"location"`
	Address            string              `json:"address,omitempty"`
	ReportedBy         uuid.UUID           `json:"reported_by"`
	VerifiedBy         *uuid.UUID          `json:"verified_by,omitempty"`
	VerifiedAt         *time.Time          `json:"verified_at,omitempty"`
	RequiredSkills     []SkillRequirement  `json:"required_skills"`
	UrgencyLevel       int                 `json:"urgency_level"`
	EscalationLevel    int                 `json:"escalation_level"`
	AssignedVolunteers []AssignedVolunteer `json:"assigned_volunteers"`
	ResolvedAt         *time.Time          `json:"resolved_at,omitempty"`
	ClosedAt           *time.Time          `json:"closed_at,omitempty"`
	Notes              []Note              `json:"notes"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// Escalate повышает уровень эскалации инцидента и возвращает true,
// если уровень действительно изменился. На пределе (5) - no-op.
// Серьезность и срочность двигаются только вверх: medium -> high
// с уровня 2, high -> critical с уровня 3; low и critical политика
// не трогает.
func (i *Incident) Escalate() bool {
	if i.EscalationLevel >= MaxEscalationLevel {
		return false
	}

	i.EscalationLevel++
	i.UrgencyLevel = min(i.UrgencyLevel+2, 10)

	switch {
	case i.Severity == SeverityMedium && i.EscalationLevel >= 2:
		i.Severity = SeverityHigh
	case i.Severity == SeverityHigh && i.EscalationLevel >= 3:
		i.Severity = SeverityCritical
	}
	return true
}

// VolunteerEntry возвращает запись о назначенном волонтере, если она есть
func (i *Incident) VolunteerEntry(volunteerID uuid.UUID) *AssignedVolunteer {
	for idx := range i.AssignedVolunteers {
		if i.AssignedVolunteers[idx].VolunteerID == volunteerID {
			return &i.AssignedVolunteers[idx]
		}
	}
	return nil
}
