package v1

import "github.com/shenikar/relief_coordination_system/internal/models"

// ReportRequestToIncidentModel преобразует DTO регистрации в доменную модель
func ReportRequestToIncidentModel(dto ReportIncidentRequest) (*models.Incident, error) {
	location, err := models.NewCoordinate(dto.Longitude, dto.Latitude)
	if err != nil {
		return nil, err
	}

	requiredSkills := make([]models.SkillRequirement, len(dto.RequiredSkills))
	for i, rs := range dto.RequiredSkills {
		requiredSkills[i] = models.SkillRequirement{
			Skill:    rs.Skill,
			MinLevel: rs.MinLevel,
			Priority: rs.Priority,
		}
	}

	return &models.Incident{
		Title:          dto.Title,
		Description:    dto.Description,
		Severity:       dto.Severity,
		Location:       location,
		Address:        dto.Address,
		RequiredSkills: requiredSkills,
		UrgencyLevel:   dto.UrgencyLevel,
	}, nil
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	requiredSkills := make([]SkillRequirementDTO, len(model.RequiredSkills))
	for i, rs := range model.RequiredSkills {
		requiredSkills[i] = SkillRequirementDTO{
			Skill:    rs.Skill,
			MinLevel: rs.MinLevel,
			Priority: rs.Priority,
		}
	}

	assignedVolunteers := make([]AssignedVolunteerResponse, len(model.AssignedVolunteers))
	for i, av := range model.AssignedVolunteers {
		assignedVolunteers[i] = AssignedVolunteerResponse{
			VolunteerID: av.VolunteerID,
			Status:      av.Status,
			AssignedAt:  av.AssignedAt,
		}
	}

	return &IncidentResponse{
		ID:                 model.ID,
		Title:              model.Title,
		Description:        model.Description,
		Severity:           model.Severity,
		Status:             model.Status,
		Latitude:           model.Location.Latitude,
		Longitude:          model.Location.Longitude,
		Address:            model.Address,
		ReportedBy:         model.ReportedBy,
		RequiredSkills:     requiredSkills,
		UrgencyLevel:       model.UrgencyLevel,
		EscalationLevel:    model.EscalationLevel,
		AssignedVolunteers: assignedVolunteers,
		ResolvedAt:         model.ResolvedAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(incidents []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(incidents))
	for i, incident := range incidents {
		responses[i] = ModelToIncidentResponse(incident)
	}
	return responses
}

// ModelToAssignmentResponse преобразует доменную модель в DTO для ответа
func ModelToAssignmentResponse(model *models.Assignment) *AssignmentResponse {
	matchedSkills := make([]MatchedSkillResponse, len(model.MatchedSkills))
	for i, ms := range model.MatchedSkills {
		matchedSkills[i] = MatchedSkillResponse{
			Skill: ms.Skill,
			Level: ms.Level,
		}
	}

	return &AssignmentResponse{
		ID:            model.ID,
		IncidentID:    model.IncidentID,
		VolunteerID:   model.VolunteerID,
		CoordinatorID: model.CoordinatorID,
		Status:        model.Status,
		DistanceM:     model.DistanceM,
		MatchedSkills: matchedSkills,
		Priority:      model.Priority,
		RequestedAt:   model.RequestedAt,
		AcceptedAt:    model.AcceptedAt,
		RejectedAt:    model.RejectedAt,
		StartedAt:     model.StartedAt,
		CompletedAt:   model.CompletedAt,
		CancelledAt:   model.CancelledAt,
		Rating:        model.Rating,
		Feedback:      model.Feedback,
		Notes:         ModelsToNoteResponses(model.Notes),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// ModelsToAssignmentResponses преобразует слайс моделей в слайс DTO
func ModelsToAssignmentResponses(assignments []*models.Assignment) []*AssignmentResponse {
	responses := make([]*AssignmentResponse, len(assignments))
	for i, assignment := range assignments {
		responses[i] = ModelToAssignmentResponse(assignment)
	}
	return responses
}

// ModelsToNoteResponses преобразует заметки журнала в DTO
func ModelsToNoteResponses(notes []models.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = NoteResponse{
			Text:    note.Text,
			AddedBy: note.AddedBy,
			AddedAt: note.AddedAt,
		}
	}
	return responses
}

// ModelToSkillDTO преобразует навык в DTO
func ModelToSkillDTO(skill models.VolunteerSkill) VolunteerSkillDTO {
	return VolunteerSkillDTO{
		Skill:      skill.Name,
		Level:      skill.Level,
		Verified:   skill.Verified,
		VerifiedBy: skill.VerifiedBy,
		VerifiedAt: skill.VerifiedAt,
	}
}

// ModelsToSkillDTOs преобразует слайс навыков в слайс DTO
func ModelsToSkillDTOs(skills []models.VolunteerSkill) []VolunteerSkillDTO {
	dtos := make([]VolunteerSkillDTO, len(skills))
	for i, skill := range skills {
		dtos[i] = ModelToSkillDTO(skill)
	}
	return dtos
}

// ModelsToMatchCandidateResponses преобразует кандидатов подбора в DTO
func ModelsToMatchCandidateResponses(candidates []*models.MatchCandidate) []*MatchCandidateResponse {
	responses := make([]*MatchCandidateResponse, len(candidates))
	for i, c := range candidates {
		matchedSkills := make([]MatchedSkillResponse, len(c.MatchedSkills))
		for j, ms := range c.MatchedSkills {
			matchedSkills[j] = MatchedSkillResponse{
				Skill: ms.Skill,
				Level: ms.Level,
			}
		}
		responses[i] = &MatchCandidateResponse{
			Volunteer: VolunteerSummaryResponse{
				ID:        c.Volunteer.ID,
				Name:      c.Volunteer.Name,
				Email:     c.Volunteer.Email,
				Phone:     c.Volunteer.Phone,
				Latitude:  c.Volunteer.Location.Latitude,
				Longitude: c.Volunteer.Location.Longitude,
			},
			MatchedSkills: matchedSkills,
			Score:         c.Score,
			DistanceM:     c.DistanceM,
		}
	}
	return responses
}
