package service_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/config"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/notification"
	notification_mocks "github.com/shenikar/relief_coordination_system/internal/notification/mocks"
	"github.com/shenikar/relief_coordination_system/internal/service"
	"github.com/shenikar/relief_coordination_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (service.IncidentService, *mocks.MockIncidentRepository, *mocks.MockUserRepository, *notification_mocks.MockDispatcher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	usersMock := mocks.NewMockUserRepository(ctrl)
	dispatcherMock := notification_mocks.NewMockDispatcher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		DefaultMatchRadiusMeters: 10000,
	}

	svc := service.NewIncidentService(repoMock, usersMock, logger, cfg, dispatcherMock)
	return svc, repoMock, usersMock, dispatcherMock
}

func TestGetIncident_Success_FromCache(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{
		ID:    incidentID,
		Title: "Тестовый инцидент из кеша",
	}

	// Ожидания
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, incidentID).
		Return(expectedIncident, nil).
		Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_Success_FromDB(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{
		ID:    incidentID,
		Title: "Тестовый инцидент из БД",
	}

	// Ожидания
	// 1. Промах кеша
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, incidentID).
		Return(nil, nil).
		Times(1)

	// 2. Попадание в БД
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(expectedIncident, nil).
		Times(1)

	// 3. Запись в кеш
	repoMock.EXPECT().
		SetIncidentCache(ctx, expectedIncident).
		Return(nil).
		Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestReportIncident_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, usersMock, dispatcherMock := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCitizen}
	incident := &models.Incident{
		Title:    "Наводнение на набережной",
		Location: models.Coordinate{Longitude: 37.6173, Latitude: 55.7558},
	}
	nearby := []*models.VolunteerSummary{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, incident).
		Return(nil).
		Times(1)

	usersMock.EXPECT().
		FindNearbyVolunteers(ctx, incident.Location, 10000.0).
		Return(nearby, nil).
		Times(1)

	dispatcherMock.EXPECT().
		NotifyUser(ctx, nearby[0].ID, notification.EventNewIncidentNearby, gomock.Any()).
		Return(nil).
		Times(1)
	dispatcherMock.EXPECT().
		NotifyUser(ctx, nearby[1].ID, notification.EventNewIncidentNearby, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	err := svc.ReportIncident(ctx, actor, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusReported, incident.Status)
	assert.Equal(t, actor.ID, incident.ReportedBy)
	assert.Equal(t, models.SeverityMedium, incident.Severity)
	assert.Equal(t, 5, incident.UrgencyLevel)
}

func TestReportIncident_NoLocation(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCitizen}
	incident := &models.Incident{Title: "Без координат"}

	// Действие
	err := svc.ReportIncident(ctx, actor, incident)

	// Проверки
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestReportIncident_NotificationFailureIsSwallowed(t *testing.T) {
	// Подготовка
	svc, repoMock, usersMock, dispatcherMock := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCitizen}
	incident := &models.Incident{
		Title:    "Пожар в здании",
		Location: models.Coordinate{Longitude: 37.6173, Latitude: 55.7558},
	}
	nearby := []*models.VolunteerSummary{{ID: uuid.New()}}

	// Ожидания
	repoMock.EXPECT().Create(ctx, incident).Return(nil).Times(1)
	usersMock.EXPECT().
		FindNearbyVolunteers(ctx, incident.Location, 10000.0).
		Return(nearby, nil).
		Times(1)
	dispatcherMock.EXPECT().
		NotifyUser(ctx, nearby[0].ID, notification.EventNewIncidentNearby, gomock.Any()).
		Return(fmt.Errorf("redis недоступен")).
		Times(1)

	// Действие
	err := svc.ReportIncident(ctx, actor, incident)

	// Проверки: сбой доставки не откатывает операцию
	require.NoError(t, err)
}

func TestVerifyIncident_NotCoordinator(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Действие
	incident, err := svc.VerifyIncident(ctx, actor, uuid.New())

	// Проверки
	assert.Nil(t, incident)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestVerifyIncident_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	stored := &models.Incident{
		ID:     incidentID,
		Status: models.IncidentStatusReported,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().Update(ctx, stored).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)

	// Действие
	incident, err := svc.VerifyIncident(ctx, actor, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusVerified, incident.Status)
	require.NotNil(t, incident.VerifiedBy)
	assert.Equal(t, actor.ID, *incident.VerifiedBy)
	assert.NotNil(t, incident.VerifiedAt)
}

func TestUpdateIncidentStatus_UnknownStatus(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}

	// Действие
	incident, err := svc.UpdateIncidentStatus(ctx, actor, uuid.New(), "exploded")

	// Проверки
	assert.Nil(t, incident)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestUpdateIncidentStatus_SameStatusIsNoOp(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	stored := &models.Incident{
		ID:     incidentID,
		Status: models.IncidentStatusVerified,
	}

	// Ожидания: без обновления и уведомлений
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(stored, nil).Times(1)

	// Действие
	incident, err := svc.UpdateIncidentStatus(ctx, actor, incidentID, models.IncidentStatusVerified)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusVerified, incident.Status)
}

func TestUpdateIncidentStatus_Success_NotifiesAll(t *testing.T) {
	// Подготовка
	svc, repoMock, _, dispatcherMock := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	stored := &models.Incident{
		ID:     incidentID,
		Status: models.IncidentStatusInProgress,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().Update(ctx, stored).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	dispatcherMock.EXPECT().
		NotifyAll(ctx, notification.EventIncidentStatusChanged, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	incident, err := svc.UpdateIncidentStatus(ctx, actor, incidentID, models.IncidentStatusResolved)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusResolved, incident.Status)
	assert.NotNil(t, incident.ResolvedAt)
}

func TestEscalateIncident_Success_NotifiesCoordinators(t *testing.T) {
	// Подготовка
	svc, repoMock, _, dispatcherMock := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	stored := &models.Incident{
		ID:              incidentID,
		Severity:        models.SeverityMedium,
		UrgencyLevel:    5,
		EscalationLevel: 1,
	}

	// Ожидания: запись идет со сверкой исходного уровня эскалации
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().UpdateEscalation(ctx, stored, 1).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	dispatcherMock.EXPECT().
		NotifyRole(ctx, models.RoleCoordinator, notification.EventIncidentEscalated, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	incident, err := svc.EscalateIncident(ctx, actor, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, incident.EscalationLevel)
	assert.Equal(t, models.SeverityHigh, incident.Severity)
}

func TestEscalateIncident_ConcurrentEscalationConflict(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	stored := &models.Incident{
		ID:              incidentID,
		Severity:        models.SeverityMedium,
		UrgencyLevel:    5,
		EscalationLevel: 1,
	}

	// Ожидания: уровень успел измениться между чтением и записью,
	// повторная эскалация не затирает чужой инкремент
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().
		UpdateEscalation(ctx, stored, 1).
		Return(apperrors.NewConflict("incident was escalated concurrently")).
		Times(1)

	// Действие
	incident, err := svc.EscalateIncident(ctx, actor, incidentID)

	// Проверки
	assert.Nil(t, incident)
	assert.True(t, apperrors.IsConflict(err))
}

func TestEscalateIncident_AtMaxLevel_NoOp(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	stored := &models.Incident{
		ID:              incidentID,
		Severity:        models.SeverityCritical,
		UrgencyLevel:    10,
		EscalationLevel: models.MaxEscalationLevel,
	}

	// Ожидания: без обновления и уведомлений
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(stored, nil).Times(1)

	// Действие
	incident, err := svc.EscalateIncident(ctx, actor, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.MaxEscalationLevel, incident.EscalationLevel)
}

func TestAddIncidentNote_EmptyText(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Действие
	err := svc.AddIncidentNote(ctx, actor, uuid.New(), "")

	// Проверки
	assert.True(t, apperrors.IsInvalidInput(err))
}
