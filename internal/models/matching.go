package models

// MatchCandidate - волонтер-кандидат для инцидента с оценкой соответствия
type MatchCandidate struct {
	Volunteer     VolunteerSummary `json:"volunteer"`
	MatchedSkills []MatchedSkill   `json:"matched_skills"`
	Score         int              `json:"score"`
	DistanceM     float64          `json:"distance_meters"`
}

// ActivityReport - сводка активности волонтеров по назначениям
type ActivityReport struct {
	TotalAssignments int                           `json:"total_assignments"`
	ByStatus         map[string]int                `json:"by_status"`
	ByVolunteer      map[string]*VolunteerActivity `json:"by_volunteer"`
	AverageRating    float64                       `json:"average_rating"`
	TotalDistanceM   float64                       `json:"total_distance_meters"`
}

// VolunteerActivity - статистика одного волонтера в отчете
type VolunteerActivity struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}
