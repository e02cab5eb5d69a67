package matching

import (
	"strings"

	"github.com/shenikar/relief_coordination_system/internal/models"
)

// Порядковые значения уровней владения навыком
var levelValues = map[string]int{
	models.LevelBeginner:     1,
	models.LevelIntermediate: 2,
	models.LevelAdvanced:     3,
	models.LevelExpert:       4,
}

// Веса приоритетов требований
var priorityWeights = map[string]int{
	models.PriorityLow:    1,
	models.PriorityMedium: 2,
	models.PriorityHigh:   3,
}

// defaultOrdinal - значение для неизвестных строк уровня/приоритета.
// Неизвестные значения не являются ошибкой: считаются эквивалентом medium.
const defaultOrdinal = 2

// Match сопоставляет требуемые навыки инцидента с навыками волонтера.
// Совпадение по имени регистронезависимое и учитывает только
// подтвержденные навыки. Каждое совпадение по имени попадает в результат
// независимо от уровня; в счет идут только совпадения, где уровень
// волонтера не ниже требуемого минимума, с весом приоритета требования.
func Match(required []models.SkillRequirement, offered []models.VolunteerSkill) ([]models.MatchedSkill, int) {
	matched := make([]models.MatchedSkill, 0, len(required))
	score := 0

	for _, req := range required {
		skill := findVerified(offered, req.Skill)
		if skill == nil {
			continue
		}

		matched = append(matched, models.MatchedSkill{
			Skill: skill.Name,
			Level: skill.Level,
		})

		if levelValue(skill.Level) >= levelValue(req.MinLevel) {
			score += priorityWeight(req.Priority)
		}
	}

	return matched, score
}

// findVerified ищет подтвержденный навык с совпадающим именем
func findVerified(offered []models.VolunteerSkill, name string) *models.VolunteerSkill {
	for i := range offered {
		if offered[i].Verified && strings.EqualFold(offered[i].Name, name) {
			return &offered[i]
		}
	}
	return nil
}

func levelValue(level string) int {
	if v, ok := levelValues[level]; ok {
		return v
	}
	return defaultOrdinal
}

func priorityWeight(priority string) int {
	if w, ok := priorityWeights[priority]; ok {
		return w
	}
	return defaultOrdinal
}
