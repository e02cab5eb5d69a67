package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/geo"
	"github.com/shenikar/relief_coordination_system/internal/matching"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/notification"
	"github.com/sirupsen/logrus"
)

// AssignmentFilter - параметры выборки назначений
type AssignmentFilter struct {
	IncidentID  *uuid.UUID
	VolunteerID *uuid.UUID
	Status      string
	From        *time.Time
	To          *time.Time
}

// AssignmentRepository определяет контракт для работы с бд назначений.
// Create вставляет назначение и pending-запись в журнал волонтеров
// инцидента одной транзакцией; дубликат пары (инцидент, волонтер)
// возвращается как Conflict от ограничения уникальности, а не от
// предварительной проверки. ApplyTransition и Finish выполняют
// обновление назначения и инцидента одной транзакцией с блокировкой
// строки инцидента, поэтому конкурирующие переходы сериализуются.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]*models.Assignment, error)
	// ApplyTransition сохраняет назначение и обновляет инцидент: подстатус
	// волонтера (если subStatus непустой) и статус инцидента (если текущий
	// входит в fromStatuses). Возвращает инцидент и признак смены статуса.
	// prevStatus - статус назначения на момент проверки предусловия;
	// если к моменту записи он изменился, возвращается InvalidTransition.
	ApplyTransition(ctx context.Context, assignment *models.Assignment, prevStatus, subStatus string, fromStatuses []string, toStatus string) (*models.Incident, bool, error)
	// Finish сохраняет терминальный переход и, если у инцидента не осталось
	// открытых назначений, переводит его в resolved. Проверка выполняется
	// внутри той же транзакции под блокировкой строки инцидента;
	// prevStatus сверяется так же, как в ApplyTransition.
	Finish(ctx context.Context, assignment *models.Assignment, prevStatus, subStatus string) (*models.Incident, bool, error)
	AddNote(ctx context.Context, id uuid.UUID, note models.Note) error
}

// CreateAssignmentInput - данные для создания назначения
type CreateAssignmentInput struct {
	IncidentID  uuid.UUID
	VolunteerID uuid.UUID
	Priority    string
}

// CompleteAssignmentInput - необязательные данные завершения
type CompleteAssignmentInput struct {
	Rating   *int
	Feedback string
}

// AssignmentService определяет контракт жизненного цикла назначений
type AssignmentService interface {
	CreateAssignment(ctx context.Context, actor models.Actor, input CreateAssignmentInput) (*models.Assignment, error)
	GetAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error)
	ListAssignments(ctx context.Context, actor models.Actor, filter AssignmentFilter) ([]*models.Assignment, error)
	AcceptAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error)
	RejectAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error)
	StartAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error)
	CompleteAssignment(ctx context.Context, actor models.Actor, id uuid.UUID, input CompleteAssignmentInput) (*models.Assignment, error)
	CancelAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error)
	AddAssignmentNote(ctx context.Context, actor models.Actor, id uuid.UUID, text string) error
	GetActivityReport(ctx context.Context, actor models.Actor, filter AssignmentFilter) (*models.ActivityReport, error)
}

type assignmentService struct {
	repo       AssignmentRepository
	incidents  IncidentRepository
	users      UserRepository
	logger     *logrus.Logger
	dispatcher notification.Dispatcher
}

// NewAssignmentService создает сервис назначений
func NewAssignmentService(repo AssignmentRepository, incidents IncidentRepository, users UserRepository, logger *logrus.Logger, dispatcher notification.Dispatcher) AssignmentService {
	return &assignmentService{
		repo:       repo,
		incidents:  incidents,
		users:      users,
		logger:     logger,
		dispatcher: dispatcher,
	}
}

// CreateAssignment создает назначение pending со снимком совпавших навыков
// и расстоянием на момент создания. Доступно только координатору.
func (s *assignmentService) CreateAssignment(ctx context.Context, actor models.Actor, input CreateAssignmentInput) (*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "assignment",
		"method":       "CreateAssignment",
		"incident_id":  input.IncidentID,
		"volunteer_id": input.VolunteerID,
	})
	log.Info("Attempting to create a new assignment")

	if !actor.IsCoordinator() {
		return nil, apperrors.NewUnauthorized("only coordinators can create assignments")
	}

	incident, err := s.incidents.GetByID(ctx, input.IncidentID)
	if err != nil {
		log.WithError(err).Warn("Incident not found for assignment")
		return nil, fmt.Errorf("service: could not create assignment: %w", err)
	}

	volunteer, err := s.users.GetByID(ctx, input.VolunteerID)
	if err != nil {
		log.WithError(err).Warn("Volunteer not found for assignment")
		return nil, fmt.Errorf("service: could not create assignment: %w", err)
	}
	if volunteer.Role != models.RoleVolunteer {
		return nil, apperrors.NewNotFound("volunteer", input.VolunteerID.String())
	}

	priority := input.Priority
	if priority == "" {
		priority = models.AssignmentPriorityMedium
	}

	// Снимок навыков: фиксируются все совпадения по имени независимо от
	// уровня, как и в ранжировании.
	matched, _ := matching.Match(incident.RequiredSkills, volunteer.Skills)

	assignment := &models.Assignment{
		IncidentID:    input.IncidentID,
		VolunteerID:   input.VolunteerID,
		CoordinatorID: &actor.ID,
		Status:        models.AssignmentStatusPending,
		DistanceM:     geo.Distance(incident.Location, volunteer.Location),
		MatchedSkills: matched,
		Priority:      priority,
		RequestedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		log.WithError(err).Error("Failed to create assignment in repository")
		return nil, fmt.Errorf("service: could not create assignment: %w", err)
	}
	if err := s.incidents.InvalidateIncidentCache(ctx, input.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	payload := map[string]any{
		"message": "New assignment request for you",
		"assignment": map[string]any{
			"id":              assignment.ID,
			"incident_id":     assignment.IncidentID,
			"priority":        assignment.Priority,
			"distance_meters": assignment.DistanceM,
			"matched_skills":  assignment.MatchedSkills,
		},
	}
	if err := s.dispatcher.NotifyUser(ctx, input.VolunteerID, notification.EventAssignmentRequest, payload); err != nil {
		log.WithError(err).Warn("Failed to dispatch assignment-request notification")
	}

	log.WithField("assignment_id", assignment.ID).Info("Assignment created successfully")
	return assignment, nil
}

// GetAssignment возвращает назначение. Волонтер видит только свои.
func (s *assignmentService) GetAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get assignment: %w", err)
	}
	if !actor.IsCoordinator() && assignment.VolunteerID != actor.ID {
		return nil, apperrors.NewUnauthorized("not authorized to view this assignment")
	}
	return assignment, nil
}

// ListAssignments возвращает назначения по фильтру.
// Волонтерам выборка принудительно ограничивается их собственными.
func (s *assignmentService) ListAssignments(ctx context.Context, actor models.Actor, filter AssignmentFilter) ([]*models.Assignment, error) {
	if actor.Role == models.RoleVolunteer {
		filter.VolunteerID = &actor.ID
	}

	assignments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: could not list assignments: %w", err)
	}
	return assignments, nil
}

// AcceptAssignment - переход pending -> accepted волонтером назначения.
// Инцидент в статусе reported/verified переводится в assigned.
func (s *assignmentService) AcceptAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "assignment",
		"method":        "AcceptAssignment",
		"assignment_id": id,
	})

	assignment, err := s.loadForTransition(ctx, actor, id, "accept", models.AssignmentStatusPending)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignment.Status = models.AssignmentStatusAccepted
	assignment.AcceptedAt = &now

	fromStatuses := []string{models.IncidentStatusReported, models.IncidentStatusVerified}
	if _, _, err := s.repo.ApplyTransition(ctx, assignment, models.AssignmentStatusPending, models.AssignmentStatusAccepted, fromStatuses, models.IncidentStatusAssigned); err != nil {
		log.WithError(err).Error("Failed to apply accept transition")
		return nil, fmt.Errorf("service: could not accept assignment: %w", err)
	}
	if err := s.incidents.InvalidateIncidentCache(ctx, assignment.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	s.notifyCoordinator(ctx, log, assignment, notification.EventAssignmentAccepted, "Volunteer accepted assignment")

	log.Info("Assignment accepted successfully")
	return assignment, nil
}

// RejectAssignment - переход pending -> rejected волонтером назначения
func (s *assignmentService) RejectAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "assignment",
		"method":        "RejectAssignment",
		"assignment_id": id,
	})

	assignment, err := s.loadForTransition(ctx, actor, id, "reject", models.AssignmentStatusPending)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignment.Status = models.AssignmentStatusRejected
	assignment.RejectedAt = &now

	if _, _, err := s.repo.ApplyTransition(ctx, assignment, models.AssignmentStatusPending, models.AssignmentStatusRejected, nil, ""); err != nil {
		log.WithError(err).Error("Failed to apply reject transition")
		return nil, fmt.Errorf("service: could not reject assignment: %w", err)
	}
	if err := s.incidents.InvalidateIncidentCache(ctx, assignment.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	s.notifyCoordinator(ctx, log, assignment, notification.EventAssignmentRejected, "Volunteer rejected assignment")

	log.Info("Assignment rejected successfully")
	return assignment, nil
}

// StartAssignment - переход accepted -> in-progress волонтером назначения.
// Инцидент в статусе assigned переводится в in-progress.
func (s *assignmentService) StartAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "assignment",
		"method":        "StartAssignment",
		"assignment_id": id,
	})

	assignment, err := s.loadForTransition(ctx, actor, id, "start", models.AssignmentStatusAccepted)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignment.Status = models.AssignmentStatusInProgress
	assignment.StartedAt = &now

	fromStatuses := []string{models.IncidentStatusAssigned}
	incident, changed, err := s.repo.ApplyTransition(ctx, assignment, models.AssignmentStatusAccepted, "", fromStatuses, models.IncidentStatusInProgress)
	if err != nil {
		log.WithError(err).Error("Failed to apply start transition")
		return nil, fmt.Errorf("service: could not start assignment: %w", err)
	}
	if err := s.incidents.InvalidateIncidentCache(ctx, assignment.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	if changed {
		s.notifyStatusChange(ctx, log, incident, models.IncidentStatusAssigned)
	}

	log.Info("Assignment started successfully")
	return assignment, nil
}

// CompleteAssignment - переход in-progress -> completed волонтером
// назначения. Если после перехода у инцидента не осталось открытых
// назначений, инцидент переводится в resolved ровно один раз.
func (s *assignmentService) CompleteAssignment(ctx context.Context, actor models.Actor, id uuid.UUID, input CompleteAssignmentInput) (*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "assignment",
		"method":        "CompleteAssignment",
		"assignment_id": id,
	})

	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, apperrors.NewInvalidInput("rating must be between 1 and 5")
	}

	assignment, err := s.loadForTransition(ctx, actor, id, "complete", models.AssignmentStatusInProgress)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignment.Status = models.AssignmentStatusCompleted
	assignment.CompletedAt = &now
	assignment.Rating = input.Rating
	assignment.Feedback = input.Feedback

	incident, resolved, err := s.repo.Finish(ctx, assignment, models.AssignmentStatusInProgress, models.AssignmentStatusCompleted)
	if err != nil {
		log.WithError(err).Error("Failed to apply complete transition")
		return nil, fmt.Errorf("service: could not complete assignment: %w", err)
	}
	if err := s.incidents.InvalidateIncidentCache(ctx, assignment.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	if resolved {
		s.notifyStatusChange(ctx, log, incident, models.IncidentStatusInProgress)
	}

	log.WithField("incident_resolved", resolved).Info("Assignment completed successfully")
	return assignment, nil
}

// CancelAssignment - административная отмена координатором из любого
// активного статуса. Как и завершение, может закрыть последнее открытое
// назначение инцидента и перевести его в resolved.
func (s *assignmentService) CancelAssignment(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "assignment",
		"method":        "CancelAssignment",
		"assignment_id": id,
	})

	if !actor.IsCoordinator() {
		return nil, apperrors.NewUnauthorized("only coordinators can cancel assignments")
	}

	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Assignment not found for cancel")
		return nil, fmt.Errorf("service: could not cancel assignment: %w", err)
	}
	if assignment.IsTerminal() {
		return nil, apperrors.NewInvalidTransition("cancel", assignment.Status, "an active status")
	}

	prevStatus := assignment.Status
	now := time.Now().UTC()
	assignment.Status = models.AssignmentStatusCancelled
	assignment.CancelledAt = &now

	incident, resolved, err := s.repo.Finish(ctx, assignment, prevStatus, models.AssignmentStatusCancelled)
	if err != nil {
		log.WithError(err).Error("Failed to apply cancel transition")
		return nil, fmt.Errorf("service: could not cancel assignment: %w", err)
	}
	if err := s.incidents.InvalidateIncidentCache(ctx, assignment.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	if resolved {
		s.notifyStatusChange(ctx, log, incident, models.IncidentStatusInProgress)
	}

	log.Info("Assignment cancelled successfully")
	return assignment, nil
}

// AddAssignmentNote добавляет заметку в журнал назначения.
// Доступно координаторам и волонтеру назначения.
func (s *assignmentService) AddAssignmentNote(ctx context.Context, actor models.Actor, id uuid.UUID, text string) error {
	if text == "" {
		return apperrors.NewInvalidInput("note text is required")
	}

	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service: could not add assignment note: %w", err)
	}
	if !actor.IsCoordinator() && assignment.VolunteerID != actor.ID {
		return apperrors.NewUnauthorized("not authorized to add notes to this assignment")
	}

	note := models.Note{
		Text:    text,
		AddedBy: actor.ID,
		AddedAt: time.Now().UTC(),
	}
	if err := s.repo.AddNote(ctx, id, note); err != nil {
		return fmt.Errorf("service: could not add assignment note: %w", err)
	}
	return nil
}

// GetActivityReport строит сводку активности волонтеров. Только координатор.
func (s *assignmentService) GetActivityReport(ctx context.Context, actor models.Actor, filter AssignmentFilter) (*models.ActivityReport, error) {
	if !actor.IsCoordinator() {
		return nil, apperrors.NewUnauthorized("only coordinators can view activity reports")
	}

	assignments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: could not build activity report: %w", err)
	}

	report := &models.ActivityReport{
		TotalAssignments: len(assignments),
		ByStatus:         make(map[string]int),
		ByVolunteer:      make(map[string]*models.VolunteerActivity),
	}

	ratingSum, ratingCount := 0, 0
	for _, a := range assignments {
		report.ByStatus[a.Status]++
		report.TotalDistanceM += a.DistanceM

		if a.Rating != nil {
			ratingSum += *a.Rating
			ratingCount++
		}

		key := a.VolunteerID.String()
		activity := report.ByVolunteer[key]
		if activity == nil {
			activity = &models.VolunteerActivity{}
			report.ByVolunteer[key] = activity
		}
		activity.Total++
		if a.Status == models.AssignmentStatusCompleted {
			activity.Completed++
		}
	}
	if ratingCount > 0 {
		report.AverageRating = float64(ratingSum) / float64(ratingCount)
	}

	return report, nil
}

// loadForTransition загружает назначение и проверяет общие предусловия
// волонтерских переходов: действует волонтер назначения, текущий статус
// равен требуемому.
func (s *assignmentService) loadForTransition(ctx context.Context, actor models.Actor, id uuid.UUID, action, required string) (*models.Assignment, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not %s assignment: %w", action, err)
	}

	if assignment.VolunteerID != actor.ID {
		return nil, apperrors.NewUnauthorized(fmt.Sprintf("not authorized to %s this assignment", action))
	}
	if assignment.Status != required {
		return nil, apperrors.NewInvalidTransition(action, assignment.Status, required)
	}
	return assignment, nil
}

// notifyCoordinator отправляет событие координатору назначения, если он есть
func (s *assignmentService) notifyCoordinator(ctx context.Context, log *logrus.Entry, assignment *models.Assignment, event, message string) {
	if assignment.CoordinatorID == nil {
		return
	}
	payload := map[string]any{
		"message": message,
		"assignment": map[string]any{
			"id":           assignment.ID,
			"incident_id":  assignment.IncidentID,
			"volunteer_id": assignment.VolunteerID,
			"status":       assignment.Status,
		},
	}
	if err := s.dispatcher.NotifyUser(ctx, *assignment.CoordinatorID, event, payload); err != nil {
		log.WithError(err).Warnf("Failed to dispatch %s notification", event)
	}
}

// notifyStatusChange рассылает всем событие о смене статуса инцидента
func (s *assignmentService) notifyStatusChange(ctx context.Context, log *logrus.Entry, incident *models.Incident, oldStatus string) {
	if incident == nil {
		return
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
}
