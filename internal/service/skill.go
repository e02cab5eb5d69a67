package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/notification"
	"github.com/sirupsen/logrus"
)

// SkillService определяет контракт управления навыками волонтеров
type SkillService interface {
	AddSkill(ctx context.Context, actor models.Actor, skill models.VolunteerSkill) error
	ListSkills(ctx context.Context, actor models.Actor, userID uuid.UUID) ([]models.VolunteerSkill, error)
	VerifySkill(ctx context.Context, actor models.Actor, userID uuid.UUID, skillName string) (*models.VolunteerSkill, error)
}

type skillService struct {
	users      UserRepository
	logger     *logrus.Logger
	dispatcher notification.Dispatcher
}

// NewSkillService создает сервис навыков
func NewSkillService(users UserRepository, logger *logrus.Logger, dispatcher notification.Dispatcher) SkillService {
	return &skillService{
		users:      users,
		logger:     logger,
		dispatcher: dispatcher,
	}
}

// AddSkill добавляет навык текущему пользователю. Навык создается
// неподтвержденным; дубликат имени возвращает Conflict.
func (s *skillService) AddSkill(ctx context.Context, actor models.Actor, skill models.VolunteerSkill) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "skill",
		"method":  "AddSkill",
		"user_id": actor.ID,
		"skill":   skill.Name,
	})

	if skill.Name == "" {
		return apperrors.NewInvalidInput("skill name is required")
	}
	if skill.Level == "" {
		skill.Level = models.LevelIntermediate
	}
	skill.Verified = false
	skill.VerifiedBy = nil
	skill.VerifiedAt = nil

	if err := s.users.AddSkill(ctx, actor.ID, skill); err != nil {
		log.WithError(err).Warn("Failed to add skill in repository")
		return fmt.Errorf("service: could not add skill: %w", err)
	}

	log.Info("Skill added successfully")
	return nil
}

// ListSkills возвращает навыки пользователя. Чужие навыки видит
// только координатор.
func (s *skillService) ListSkills(ctx context.Context, actor models.Actor, userID uuid.UUID) ([]models.VolunteerSkill, error) {
	if userID != actor.ID && !actor.IsCoordinator() {
		return nil, apperrors.NewUnauthorized("not authorized to view these skills")
	}

	skills, err := s.users.GetSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list skills: %w", err)
	}
	return skills, nil
}

// VerifySkill подтверждает навык пользователя. Только координатор.
// Фиксируются личность подтвердившего и время; пользователь получает
// уведомление skill-verified.
func (s *skillService) VerifySkill(ctx context.Context, actor models.Actor, userID uuid.UUID, skillName string) (*models.VolunteerSkill, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "skill",
		"method":  "VerifySkill",
		"user_id": userID,
		"skill":   skillName,
	})

	if !actor.IsCoordinator() {
		return nil, apperrors.NewUnauthorized("only coordinators can verify skills")
	}

	skill, err := s.users.VerifySkill(ctx, userID, skillName, actor.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to verify skill in repository")
		return nil, fmt.Errorf("service: could not verify skill: %w", err)
	}

	payload := map[string]any{
		"message": "Your skill has been verified",
		"skill": map[string]any{
			"name":  skill.Name,
			"level": skill.Level,
		},
	}
	if err := s.dispatcher.NotifyUser(ctx, userID, notification.EventSkillVerified, payload); err != nil {
		log.WithError(err).Warn("Failed to dispatch skill-verified notification")
	}

	log.Info("Skill verified successfully")
	return skill, nil
}
