package matching

import (
	"testing"

	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMatch_UnverifiedSkillIgnored(t *testing.T) {
	required := []models.SkillRequirement{
		{Skill: "first-aid", MinLevel: models.LevelBeginner, Priority: models.PriorityHigh},
	}
	offered := []models.VolunteerSkill{
		{Name: "first-aid", Level: models.LevelExpert, Verified: false},
	}

	matched, score := Match(required, offered)

	assert.Empty(t, matched)
	assert.Zero(t, score)
}

func TestMatch_CaseInsensitiveName(t *testing.T) {
	required := []models.SkillRequirement{
		{Skill: "First-Aid", MinLevel: models.LevelBeginner, Priority: models.PriorityHigh},
	}
	offered := []models.VolunteerSkill{
		{Name: "first-aid", Level: models.LevelAdvanced, Verified: true},
	}

	matched, score := Match(required, offered)

	assert.Len(t, matched, 1)
	assert.Equal(t, "first-aid", matched[0].Skill)
	assert.Equal(t, 3, score)
}

func TestMatch_BelowMinLevelMatchesWithoutScore(t *testing.T) {
	// Совпадение по имени попадает в результат, но уровень ниже
	// минимума не дает очков
	required := []models.SkillRequirement{
		{Skill: "search-rescue", MinLevel: models.LevelExpert, Priority: models.PriorityHigh},
	}
	offered := []models.VolunteerSkill{
		{Name: "search-rescue", Level: models.LevelBeginner, Verified: true},
	}

	matched, score := Match(required, offered)

	assert.Len(t, matched, 1)
	assert.Zero(t, score)
}

func TestMatch_PriorityWeights(t *testing.T) {
	required := []models.SkillRequirement{
		{Skill: "first-aid", MinLevel: models.LevelBeginner, Priority: models.PriorityHigh},
		{Skill: "logistics", MinLevel: models.LevelBeginner, Priority: models.PriorityMedium},
		{Skill: "cooking", MinLevel: models.LevelBeginner, Priority: models.PriorityLow},
	}
	offered := []models.VolunteerSkill{
		{Name: "first-aid", Level: models.LevelIntermediate, Verified: true},
		{Name: "logistics", Level: models.LevelIntermediate, Verified: true},
		{Name: "cooking", Level: models.LevelIntermediate, Verified: true},
	}

	matched, score := Match(required, offered)

	assert.Len(t, matched, 3)
	assert.Equal(t, 3+2+1, score)
}

func TestMatch_UnknownLevelAndPriorityDefaultToMedium(t *testing.T) {
	required := []models.SkillRequirement{
		{Skill: "first-aid", MinLevel: "", Priority: ""},
	}
	offered := []models.VolunteerSkill{
		{Name: "first-aid", Level: "", Verified: true},
	}

	matched, score := Match(required, offered)

	assert.Len(t, matched, 1)
	assert.Equal(t, 2, score)
}

func TestMatch_NoRequirements(t *testing.T) {
	offered := []models.VolunteerSkill{
		{Name: "first-aid", Level: models.LevelExpert, Verified: true},
	}

	matched, score := Match(nil, offered)

	assert.Empty(t, matched)
	assert.Zero(t, score)
}
