package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/config"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/notification"
	"github.com/sirupsen/logrus"
)

// IncidentFilter - параметры выборки инцидентов
type IncidentFilter struct {
	Status       string
	Severity     string
	Near         *models.Coordinate
	RadiusMeters float64
	Page         int
	PageSize     int
}

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Update(ctx context.Context, incident *models.Incident) error
	// UpdateEscalation сохраняет результат эскалации со сверкой исходного
	// уровня: если уровень изменился с момента чтения, возвращается Conflict.
	UpdateEscalation(ctx context.Context, incident *models.Incident, prevLevel int) error
	List(ctx context.Context, filter IncidentFilter) ([]*models.Incident, error)
	AddNote(ctx context.Context, id uuid.UUID, note models.Note) error
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	ReportIncident(ctx context.Context, actor models.Actor, incident *models.Incident) error
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter IncidentFilter) ([]*models.Incident, error)
	VerifyIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Incident, error)
	UpdateIncidentStatus(ctx context.Context, actor models.Actor, id uuid.UUID, status string) (*models.Incident, error)
	EscalateIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Incident, error)
	AddIncidentNote(ctx context.Context, actor models.Actor, id uuid.UUID, text string) error
}

type incidentService struct {
	repo       IncidentRepository
	users      UserRepository
	logger     *logrus.Logger
	cfg        *config.Config
	dispatcher notification.Dispatcher
}

// NewIncidentService создает сервис инцидентов
func NewIncidentService(repo IncidentRepository, users UserRepository, logger *logrus.Logger, cfg *config.Config, dispatcher notification.Dispatcher) IncidentService {
	return &incidentService{
		repo:       repo,
		users:      users,
		logger:     logger,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

// ReportIncident регистрирует новый инцидент и уведомляет волонтеров поблизости
func (s *incidentService) ReportIncident(ctx context.Context, actor models.Actor, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ReportIncident",
		"title":   incident.Title,
	})
	log.Info("Attempting to report a new incident")

	if incident.Location.IsZero() {
		return apperrors.NewInvalidInput("incident location is required")
	}

	incident.Status = models.IncidentStatusReported
	incident.ReportedBy = actor.ID
	if incident.Severity == "" {
		incident.Severity = models.SeverityMedium
	}
	if incident.UrgencyLevel == 0 {
		incident.UrgencyLevel = 5
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	// Уведомляем активных волонтеров в радиусе подбора по умолчанию.
	// Доставка best-effort: ошибка не влияет на результат операции.
	nearby, err := s.users.FindNearbyVolunteers(ctx, incident.Location, s.cfg.DefaultMatchRadiusMeters)
	if err != nil {
		log.WithError(err).Warn("Failed to find nearby volunteers for notification")
	} else {
		payload := map[string]any{
			"message": "New incident reported near your location",
			"incident": map[string]any{
				"id":       incident.ID,
				"title":    incident.Title,
				"severity": incident.Severity,
				"location": incident.Location,
			},
		}
		for _, volunteer := range nearby {
			if err := s.dispatcher.NotifyUser(ctx, volunteer.ID, notification.EventNewIncidentNearby, payload); err != nil {
				log.WithError(err).Warn("Failed to dispatch new-incident-nearby notification")
			}
		}
	}

	log.WithField("incident_id", incident.ID).Info("Incident reported successfully")
	return nil
}

// GetIncident получает инцидент по ID, сначала проверяя кеш
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident from cache")
	}
	if cached != nil {
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов по фильтру
func (s *incidentService) ListIncidents(ctx context.Context, filter IncidentFilter) ([]*models.Incident, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if filter.Near != nil && filter.RadiusMeters <= 0 {
		filter.RadiusMeters = s.cfg.DefaultMatchRadiusMeters
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"page":    filter.Page,
	})

	incidents, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// VerifyIncident подтверждает инцидент. Доступно только координатору.
func (s *incidentService) VerifyIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "VerifyIncident",
		"incident_id": id,
	})

	if !actor.IsCoordinator() {
		return nil, apperrors.NewUnauthorized("only coordinators can verify incidents")
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to verify a non-existent incident")
		return nil, fmt.Errorf("service: could not verify incident: %w", err)
	}

	now := time.Now().UTC()
	incident.Status = models.IncidentStatusVerified
	incident.VerifiedBy = &actor.ID
	incident.VerifiedAt = &now

	if err := s.repo.Update(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to update incident in repository")
		return nil, fmt.Errorf("service: could not verify incident: %w", err)
	}
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	log.Info("Incident verified successfully")
	return incident, nil
}

// UpdateIncidentStatus меняет статус инцидента и рассылает уведомление
// об изменении. Доступно координаторам и волонтерам.
func (s *incidentService) UpdateIncidentStatus(ctx context.Context, actor models.Actor, id uuid.UUID, status string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncidentStatus",
		"incident_id": id,
		"status":      status,
	})

	if actor.Role != models.RoleCoordinator && actor.Role != models.RoleVolunteer {
		return nil, apperrors.NewUnauthorized("only coordinators and volunteers can update incident status")
	}

	if !validIncidentStatus(status) {
		return nil, apperrors.NewInvalidInput(fmt.Sprintf("unknown incident status %q", status))
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update status of a non-existent incident")
		return nil, fmt.Errorf("service: could not update incident status: %w", err)
	}

	oldStatus := incident.Status
	if oldStatus == status {
		return incident, nil
	}

	now := time.Now().UTC()
	incident.Status = status
	if status == models.IncidentStatusResolved {
		incident.ResolvedAt = &now
	}
	if status == models.IncidentStatusClosed {
		incident.ClosedAt = &now
	}

	if err := s.repo.Update(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to update incident in repository")
		return nil, fmt.Errorf("service: could not update incident status: %w", err)
	}
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	payload := map[string]any{
		"message": fmt.Sprintf("Incident status changed from %s to %s", oldStatus, incident.Status),
		"incident": map[string]any{
			"id":         incident.ID,
			"title":      incident.Title,
			"status":     incident.Status,
			"old_status": oldStatus,
		},
	}
	if err := s.dispatcher.NotifyAll(ctx, notification.EventIncidentStatusChanged, payload); err != nil {
		log.WithError(err).Warn("Failed to dispatch incident-status-changed notification")
	}

	log.Info("Incident status updated successfully")
	return incident, nil
}

// EscalateIncident повышает уровень эскалации инцидента. На пределе - no-op.
// При фактическом повышении уведомляются все координаторы.
func (s *incidentService) EscalateIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "EscalateIncident",
		"incident_id": id,
	})

	if !actor.IsCoordinator() {
		return nil, apperrors.NewUnauthorized("only coordinators can escalate incidents")
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to escalate a non-existent incident")
		return nil, fmt.Errorf("service: could not escalate incident: %w", err)
	}

	prevLevel := incident.EscalationLevel
	if !incident.Escalate() {
		log.Info("Incident already at maximum escalation level")
		return incident, nil
	}

	if err := s.repo.UpdateEscalation(ctx, incident, prevLevel); err != nil {
		log.WithError(err).Error("Failed to update incident escalation in repository")
		return nil, fmt.Errorf("service: could not escalate incident: %w", err)
	}
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	payload := map[string]any{
		"message": "Incident has been escalated",
		"incident": map[string]any{
			"id":               incident.ID,
			"title":            incident.Title,
			"escalation_level": incident.EscalationLevel,
			"severity":         incident.Severity,
			"urgency_level":    incident.UrgencyLevel,
		},
	}
	if err := s.dispatcher.NotifyRole(ctx, models.RoleCoordinator, notification.EventIncidentEscalated, payload); err != nil {
		log.WithError(err).Warn("Failed to dispatch incident-escalated notification")
	}

	log.WithField("escalation_level", incident.EscalationLevel).Info("Incident escalated successfully")
	return incident, nil
}

// AddIncidentNote добавляет заметку в журнал инцидента
func (s *incidentService) AddIncidentNote(ctx context.Context, actor models.Actor, id uuid.UUID, text string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "AddIncidentNote",
		"incident_id": id,
	})

	if text == "" {
		return apperrors.NewInvalidInput("note text is required")
	}

	note := models.Note{
		Text:    text,
		AddedBy: actor.ID,
		AddedAt: time.Now().UTC(),
	}
	if err := s.repo.AddNote(ctx, id, note); err != nil {
		log.WithError(err).Error("Failed to add incident note in repository")
		return fmt.Errorf("service: could not add incident note: %w", err)
	}
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
	return nil
}

func validIncidentStatus(status string) bool {
	switch status {
	case models.IncidentStatusReported, models.IncidentStatusVerified, models.IncidentStatusAssigned,
		models.IncidentStatusInProgress, models.IncidentStatusResolved, models.IncidentStatusClosed:
		return true
	}
	return false
}
