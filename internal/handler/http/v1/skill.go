package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/models"
)

// @Summary Add a skill
// @Description Add a skill to the current volunteer's profile. The skill starts unverified. Requires JWT.
// @Tags Skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param skill body VolunteerSkillDTO true "Skill to add"
// @Success 201 {object} VolunteerSkillDTO
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Skill already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /skills [post]
func (h *Handler) addSkill(c *gin.Context) {
	var input VolunteerSkillDTO
	log := h.logger.WithField("method", "addSkill")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill := models.VolunteerSkill{Name: input.Skill, Level: input.Level}
	if err := h.skillService.AddSkill(c.Request.Context(), actorFromContext(c), skill); err != nil {
		log.WithError(err).Warn("Failed to add skill in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, input)
}

// @Summary List skills of a user
// @Description List skills of a volunteer. Volunteers see their own profile, coordinators see anyone's. Requires JWT.
// @Tags Skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} VolunteerSkillDTO
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/{id}/skills [get]
func (h *Handler) listSkills(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}
	log := h.logger.WithField("method", "listSkills").WithField("user_id", userID)

	skills, err := h.skillService.ListSkills(c.Request.Context(), actorFromContext(c), userID)
	if err != nil {
		log.WithError(err).Warn("Failed to list skills from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToSkillDTOs(skills))
}

// @Summary Verify a volunteer's skill
// @Description Mark a volunteer's skill as verified. Coordinator only. Requires JWT.
// @Tags Skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Skill name"
// @Param request body VerifySkillRequest true "Skill owner"
// @Success 200 {object} VolunteerSkillDTO
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Skill not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /skills/{name}/verify [post]
func (h *Handler) verifySkill(c *gin.Context) {
	skillName := c.Param("name")
	log := h.logger.WithField("method", "verifySkill").WithField("skill", skillName)

	var input VerifySkillRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill, err := h.skillService.VerifySkill(c.Request.Context(), actorFromContext(c), input.UserID, skillName)
	if err != nil {
		log.WithError(err).Warn("Failed to verify skill in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSkillDTO(*skill))
}
