package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/config"
	"github.com/shenikar/relief_coordination_system/internal/geo"
	"github.com/shenikar/relief_coordination_system/internal/matching"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/sirupsen/logrus"
)

// UserRepository определяет контракт для работы с бд пользователей.
// FindNearbyVolunteers - радиусный поиск активных волонтеров
// (пространственный индекс); порядок результатов не гарантируется.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindNearbyVolunteers(ctx context.Context, center models.Coordinate, radiusMeters float64) ([]*models.VolunteerSummary, error)
	GetSkills(ctx context.Context, userID uuid.UUID) ([]models.VolunteerSkill, error)
	AddSkill(ctx context.Context, userID uuid.UUID, skill models.VolunteerSkill) error
	VerifySkill(ctx context.Context, userID uuid.UUID, skillName string, verifiedBy uuid.UUID) (*models.VolunteerSkill, error)
}

// MatchingService определяет контракт подбора волонтеров для инцидента
type MatchingService interface {
	FindCandidates(ctx context.Context, incidentID uuid.UUID, maxDistanceMeters float64) ([]*models.MatchCandidate, error)
}

type matchingService struct {
	incidents IncidentRepository
	users     UserRepository
	logger    *logrus.Logger
	cfg       *config.Config
}

// NewMatchingService создает сервис подбора волонтеров
func NewMatchingService(incidents IncidentRepository, users UserRepository, logger *logrus.Logger, cfg *config.Config) MatchingService {
	return &matchingService{
		incidents: incidents,
		users:     users,
		logger:    logger,
		cfg:       cfg,
	}
}

// FindCandidates возвращает ранжированный список волонтеров для инцидента.
// Кандидаты без единого совпавшего навыка отбрасываются. Сортировка по
// убыванию счета; при равном счете ближе - выше (детерминированный
// порядок для воспроизводимости).
func (s *matchingService) FindCandidates(ctx context.Context, incidentID uuid.UUID, maxDistanceMeters float64) ([]*models.MatchCandidate, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "matching",
		"method":      "FindCandidates",
		"incident_id": incidentID,
	})

	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident for matching")
		return nil, fmt.Errorf("service: could not find candidates: %w", err)
	}

	if incident.Location.IsZero() {
		return nil, apperrors.NewInvalidInput("incident has no location")
	}

	if maxDistanceMeters <= 0 {
		maxDistanceMeters = s.cfg.DefaultMatchRadiusMeters
	}

	nearby, err := s.users.FindNearbyVolunteers(ctx, incident.Location, maxDistanceMeters)
	if err != nil {
		log.WithError(err).Error("Failed to query nearby volunteers")
		return nil, fmt.Errorf("service: could not find candidates: %w", err)
	}

	candidates := make([]*models.MatchCandidate, 0, len(nearby))
	for _, volunteer := range nearby {
		matched, score := matching.Match(incident.RequiredSkills, volunteer.Skills)
		if len(matched) == 0 {
			continue
		}

		candidates = append(candidates, &models.MatchCandidate{
			Volunteer:     *volunteer,
			MatchedSkills: matched,
			Score:         score,
			DistanceM:     geo.Distance(incident.Location, volunteer.Location),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].DistanceM < candidates[j].DistanceM
	})

	log.WithField("count", len(candidates)).Info("Candidates matched successfully")
	return candidates, nil
}
