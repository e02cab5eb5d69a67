package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/service"
)

// runTransition выполняет переход назначения, различающийся
// только вызовом сервиса
func (h *Handler) runTransition(c *gin.Context, method string, call func(id uuid.UUID) (*models.Assignment, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment ID"})
		return
	}
	log := h.logger.WithField("method", method).WithField("id", id)

	assignment, err := call(id)
	if err != nil {
		log.WithError(err).Warn("Failed to transition assignment in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAssignmentResponse(assignment))
}

// @Summary Create an assignment
// @Description Assign a volunteer to an incident. Coordinator only. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body CreateAssignmentRequest true "Assignment creation request"
// @Success 201 {object} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Incident or volunteer not found"
// @Failure 409 {object} map[string]string "Volunteer already assigned to this incident"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments [post]
func (h *Handler) createAssignment(c *gin.Context) {
	var input CreateAssignmentRequest
	log := h.logger.WithField("method", "createAssignment")

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

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), actorFromContext(c), service.CreateAssignmentInput{
		IncidentID:  input.IncidentID,
		VolunteerID: input.VolunteerID,
		Priority:    input.Priority,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to create assignment in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToAssignmentResponse(assignment))
}

// @Summary Get a list of assignments
// @Description Get assignments, optionally filtered by incident, volunteer and status. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident_id query string false "Filter by incident ID"
// @Param volunteer_id query string false "Filter by volunteer ID"
// @Param status query string false "Filter by status"
// @Success 200 {array} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid filter parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments [get]
func (h *Handler) listAssignments(c *gin.Context) {
	log := h.logger.WithField("method", "listAssignments")

	filter := service.AssignmentFilter{Status: c.Query("status")}
	if v := c.Query("incident_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
			return
		}
		filter.IncidentID = &id
	}
	if v := c.Query("volunteer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid volunteer ID"})
			return
		}
		filter.VolunteerID = &id
	}

	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), actorFromContext(c), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list assignments from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAssignmentResponses(assignments))
}

// @Summary Get assignment by ID
// @Description Get a single assignment by its ID. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid assignment ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{id} [get]
func (h *Handler) getAssignment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment ID"})
		return
	}
	log := h.logger.WithField("method", "getAssignment").WithField("id", id)

	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get assignment from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAssignmentResponse(assignment))
}

// @Summary Accept an assignment
// @Description Accept a pending assignment as the assigned volunteer. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid assignment ID or state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{id}/accept [post]
func (h *Handler) acceptAssignment(c *gin.Context) {
	h.runTransition(c, "acceptAssignment", func(id uuid.UUID) (*models.Assignment, error) {
		return h.assignmentService.AcceptAssignment(c.Request.Context(), actorFromContext(c), id)
	})
}

// @Summary Reject an assignment
// @Description Reject a pending assignment as the assigned volunteer. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid assignment ID or state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{id}/reject [post]
func (h *Handler) rejectAssignment(c *gin.Context) {
	h.runTransition(c, "rejectAssignment", func(id uuid.UUID) (*models.Assignment, error) {
		return h.assignmentService.RejectAssignment(c.Request.Context(), actorFromContext(c), id)
	})
}

// @Summary Start work on an assignment
// @Description Move an accepted assignment to in-progress as the assigned volunteer. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid assignment ID or state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{id}/start [post]
func (h *Handler) startAssignment(c *gin.Context) {
	h.runTransition(c, "startAssignment", func(id uuid.UUID) (*models.Assignment, error) {
		return h.assignmentService.StartAssignment(c.Request.Context(), actorFromContext(c), id)
	})
}

// @Summary Complete an assignment
// @Description Complete an in-progress assignment with optional rating and feedback. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param completion body CompleteAssignmentRequest false "Completion details"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid assignment ID, state or rating"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{id}/complete [post]
func (h *Handler) completeAssignment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment ID"})
		return
	}
	log := h.logger.WithField("method", "completeAssignment").WithField("id", id)

	var input CompleteAssignmentRequest
	if c.Request.ContentLength > 0 {
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
	}

	assignment, err := h.assignmentService.CompleteAssignment(c.Request.Context(), actorFromContext(c), id, service.CompleteAssignmentInput{
		Rating:   input.Rating,
		Feedback: input.Feedback,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to complete assignment in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAssignmentResponse(assignment))
}

// @Summary Cancel an assignment
// @Description Cancel a non-terminal assignment. Coordinator only. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid assignment ID or state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{id}/cancel [post]
func (h *Handler) cancelAssignment(c *gin.Context) {
	h.runTransition(c, "cancelAssignment", func(id uuid.UUID) (*models.Assignment, error) {
		return h.assignmentService.CancelAssignment(c.Request.Context(), actorFromContext(c), id)
	})
}

// @Summary Add a note to an assignment
// @Description Append a timeline note to an assignment. Requires JWT.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param note body AddNoteRequest true "Note text"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid assignment ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{id}/notes [post]
func (h *Handler) addAssignmentNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment ID"})
		return
	}
	log := h.logger.WithField("method", "addAssignmentNote").WithField("id", id)

	var input AddNoteRequest
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

	if err := h.assignmentService.AddAssignmentNote(c.Request.Context(), actorFromContext(c), id, input.Note); err != nil {
		log.WithError(err).Warn("Failed to add assignment note in service")
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get volunteer activity report
// @Description Aggregate assignment activity over a period. Coordinator only. Requires JWT.
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param from query string false "Period start (RFC3339)"
// @Param to query string false "Period end (RFC3339)"
// @Success 200 {object} models.ActivityReport
// @Failure 400 {object} map[string]string "Invalid period parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/volunteer-activity [get]
func (h *Handler) getActivityReport(c *gin.Context) {
	log := h.logger.WithField("method", "getActivityReport")

	filter := service.AssignmentFilter{}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from parameter"})
			return
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to parameter"})
			return
		}
		filter.To = &to
	}

	report, err := h.assignmentService.GetActivityReport(c.Request.Context(), actorFromContext(c), filter)
	if err != nil {
		log.WithError(err).Warn("Failed to build activity report in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
