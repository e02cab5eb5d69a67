package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := JWTAuthMiddleware(h.cfg, h.logger)

	// Маршруты для управления инцидентами
	incidents := api.Group("/incidents", auth)
	{
		incidents.POST("", h.reportIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/verify", h.verifyIncident)
		incidents.PUT("/:id/status", h.updateIncidentStatus)
		incidents.POST("/:id/escalate", h.escalateIncident)
		incidents.POST("/:id/notes", h.addIncidentNote)
		incidents.GET("/:id/volunteers", h.findVolunteers)
	}

	// Маршруты жизненного цикла назначений
	assignments := api.Group("/assignments", auth)
	{
		assignments.POST("", h.createAssignment)
		assignments.GET("", h.listAssignments)
		assignments.GET("/:id", h.getAssignment)
		assignments.POST("/:id/accept", h.acceptAssignment)
		assignments.POST("/:id/reject", h.rejectAssignment)
		assignments.POST("/:id/start", h.startAssignment)
		assignments.POST("/:id/complete", h.completeAssignment)
		assignments.POST("/:id/cancel", h.cancelAssignment)
		assignments.POST("/:id/notes", h.addAssignmentNote)
	}

	// Маршруты навыков волонтеров
	skills := api.Group("/skills", auth)
	{
		skills.POST("", h.addSkill)
		skills.POST("/:name/verify", h.verifySkill)
	}
	api.GET("/users/:id/skills", auth, h.listSkills)

	// Отчеты для координаторов
	api.GET("/reports/volunteer-activity", auth, h.getActivityReport)

	// Websocket-подписка на события
	api.GET("/ws", auth, h.serveWebsocket)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
