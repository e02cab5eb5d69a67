package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/config"
	"github.com/shenikar/relief_coordination_system/internal/notification"
	"github.com/shenikar/relief_coordination_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService   service.IncidentService
	assignmentService service.AssignmentService
	matchingService   service.MatchingService
	skillService      service.SkillService
	hub               *notification.Hub
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	assignmentService service.AssignmentService,
	matchingService service.MatchingService,
	skillService service.SkillService,
	hub *notification.Hub,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService:   incidentService,
		assignmentService: assignmentService,
		matchingService:   matchingService,
		skillService:      skillService,
		hub:               hub,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
	}
}

// respondError сопоставляет классы ошибок ядра с HTTP-кодами.
// Сообщение ошибки ядра всегда называет нарушенный инвариант,
// поэтому отдается клиенту как есть.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsInvalidTransition(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsUnauthorized(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
