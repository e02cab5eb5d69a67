package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
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

// newTestAssignmentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestAssignmentService(t *testing.T) (service.AssignmentService, *mocks.MockAssignmentRepository, *mocks.MockIncidentRepository, *mocks.MockUserRepository, *notification_mocks.MockDispatcher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAssignmentRepository(ctrl)
	incidentsMock := mocks.NewMockIncidentRepository(ctrl)
	usersMock := mocks.NewMockUserRepository(ctrl)
	dispatcherMock := notification_mocks.NewMockDispatcher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := service.NewAssignmentService(repoMock, incidentsMock, usersMock, logger, dispatcherMock)
	return svc, repoMock, incidentsMock, usersMock, dispatcherMock
}

func TestCreateAssignment_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, incidentsMock, usersMock, dispatcherMock := newTestAssignmentService(t)
	ctx := context.Background()
	coordinator := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	volunteerID := uuid.New()

	incident := &models.Incident{
		ID:       incidentID,
		Status:   models.IncidentStatusVerified,
		Location: models.Coordinate{Longitude: 37.6173, Latitude: 55.7558},
		RequiredSkills: []models.SkillRequirement{
			{Skill: "first-aid", MinLevel: models.LevelBeginner, Priority: models.PriorityHigh},
		},
	}
	volunteer := &models.User{
		ID:       volunteerID,
		Role:     models.RoleVolunteer,
		Location: models.Coordinate{Longitude: 37.62, Latitude: 55.75},
		Skills: []models.VolunteerSkill{
			{Name: "first-aid", Level: models.LevelAdvanced, Verified: true},
		},
	}

	// Ожидания
	incidentsMock.EXPECT().GetByID(ctx, incidentID).Return(incident, nil).Times(1)
	usersMock.EXPECT().GetByID(ctx, volunteerID).Return(volunteer, nil).Times(1)
	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	incidentsMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	dispatcherMock.EXPECT().
		NotifyUser(ctx, volunteerID, notification.EventAssignmentRequest, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	assignment, err := svc.CreateAssignment(ctx, coordinator, service.CreateAssignmentInput{
		IncidentID:  incidentID,
		VolunteerID: volunteerID,
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusPending, assignment.Status)
	assert.Equal(t, models.AssignmentPriorityMedium, assignment.Priority)
	require.NotNil(t, assignment.CoordinatorID)
	assert.Equal(t, coordinator.ID, *assignment.CoordinatorID)
	assert.Len(t, assignment.MatchedSkills, 1)
	assert.Greater(t, assignment.DistanceM, 0.0)
}

func TestCreateAssignment_NotCoordinator(t *testing.T) {
	// Подготовка
	svc, _, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	volunteer := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Действие
	assignment, err := svc.CreateAssignment(ctx, volunteer, service.CreateAssignmentInput{
		IncidentID:  uuid.New(),
		VolunteerID: uuid.New(),
	})

	// Проверки
	assert.Nil(t, assignment)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestCreateAssignment_TargetIsNotVolunteer(t *testing.T) {
	// Подготовка
	svc, _, incidentsMock, usersMock, _ := newTestAssignmentService(t)
	ctx := context.Background()
	coordinator := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	citizenID := uuid.New()

	// Ожидания
	incidentsMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(&models.Incident{ID: incidentID}, nil).
		Times(1)
	usersMock.EXPECT().
		GetByID(ctx, citizenID).
		Return(&models.User{ID: citizenID, Role: models.RoleCitizen}, nil).
		Times(1)

	// Действие
	assignment, err := svc.CreateAssignment(ctx, coordinator, service.CreateAssignmentInput{
		IncidentID:  incidentID,
		VolunteerID: citizenID,
	})

	// Проверки
	assert.Nil(t, assignment)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateAssignment_DuplicateConflict(t *testing.T) {
	// Подготовка
	svc, repoMock, incidentsMock, usersMock, _ := newTestAssignmentService(t)
	ctx := context.Background()
	coordinator := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	incidentID := uuid.New()
	volunteerID := uuid.New()

	// Ожидания
	incidentsMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(&models.Incident{ID: incidentID}, nil).
		Times(1)
	usersMock.EXPECT().
		GetByID(ctx, volunteerID).
		Return(&models.User{ID: volunteerID, Role: models.RoleVolunteer}, nil).
		Times(1)
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		Return(apperrors.NewConflict("volunteer is already assigned to this incident")).
		Times(1)

	// Действие
	assignment, err := svc.CreateAssignment(ctx, coordinator, service.CreateAssignmentInput{
		IncidentID:  incidentID,
		VolunteerID: volunteerID,
	})

	// Проверки
	assert.Nil(t, assignment)
	assert.True(t, apperrors.IsConflict(err))
}

func TestAcceptAssignment_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, incidentsMock, _, dispatcherMock := newTestAssignmentService(t)
	ctx := context.Background()
	volunteerID := uuid.New()
	coordinatorID := uuid.New()
	assignmentID := uuid.New()
	incidentID := uuid.New()
	actor := models.Actor{ID: volunteerID, Role: models.RoleVolunteer}

	stored := &models.Assignment{
		ID:            assignmentID,
		IncidentID:    incidentID,
		VolunteerID:   volunteerID,
		CoordinatorID: &coordinatorID,
		Status:        models.AssignmentStatusPending,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().
		ApplyTransition(ctx, stored, models.AssignmentStatusPending, models.AssignmentStatusAccepted,
			[]string{models.IncidentStatusReported, models.IncidentStatusVerified},
			models.IncidentStatusAssigned).
		Return(&models.Incident{ID: incidentID, Status: models.IncidentStatusAssigned}, true, nil).
		Times(1)
	incidentsMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	dispatcherMock.EXPECT().
		NotifyUser(ctx, coordinatorID, notification.EventAssignmentAccepted, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	assignment, err := svc.AcceptAssignment(ctx, actor, assignmentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusAccepted, assignment.Status)
	assert.NotNil(t, assignment.AcceptedAt)
}

func TestAcceptAssignment_WrongVolunteer(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	assignmentID := uuid.New()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	stored := &models.Assignment{
		ID:          assignmentID,
		VolunteerID: uuid.New(), // Чужое назначение
		Status:      models.AssignmentStatusPending,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)

	// Действие
	assignment, err := svc.AcceptAssignment(ctx, actor, assignmentID)

	// Проверки
	assert.Nil(t, assignment)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAcceptAssignment_InvalidTransition(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	volunteerID := uuid.New()
	actor := models.Actor{ID: volunteerID, Role: models.RoleVolunteer}

	// Принять можно только из pending
	for _, status := range []string{
		models.AssignmentStatusAccepted,
		models.AssignmentStatusRejected,
		models.AssignmentStatusInProgress,
		models.AssignmentStatusCompleted,
		models.AssignmentStatusCancelled,
	} {
		assignmentID := uuid.New()
		stored := &models.Assignment{
			ID:          assignmentID,
			VolunteerID: volunteerID,
			Status:      status,
		}

		// Ожидания
		repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)

		// Действие
		assignment, err := svc.AcceptAssignment(ctx, actor, assignmentID)

		// Проверки
		assert.Nil(t, assignment)
		assert.True(t, apperrors.IsInvalidTransition(err), "status %s", status)
	}
}

func TestAcceptAssignment_StatusChangedBeforeWrite(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	volunteerID := uuid.New()
	assignmentID := uuid.New()
	actor := models.Actor{ID: volunteerID, Role: models.RoleVolunteer}

	stored := &models.Assignment{
		ID:          assignmentID,
		VolunteerID: volunteerID,
		Status:      models.AssignmentStatusPending,
	}

	// Ожидания: между чтением и записью назначение успели отклонить,
	// репозиторий не находит строку в исходном статусе
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().
		ApplyTransition(ctx, stored, models.AssignmentStatusPending, models.AssignmentStatusAccepted, gomock.Any(), models.IncidentStatusAssigned).
		Return(nil, false, apperrors.NewInvalidTransition("transition", models.AssignmentStatusRejected, models.AssignmentStatusPending)).
		Times(1)

	// Действие
	assignment, err := svc.AcceptAssignment(ctx, actor, assignmentID)

	// Проверки: терминальный статус не перезаписывается молча
	assert.Nil(t, assignment)
	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestRejectAssignment_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, incidentsMock, _, dispatcherMock := newTestAssignmentService(t)
	ctx := context.Background()
	volunteerID := uuid.New()
	coordinatorID := uuid.New()
	assignmentID := uuid.New()
	incidentID := uuid.New()
	actor := models.Actor{ID: volunteerID, Role: models.RoleVolunteer}

	stored := &models.Assignment{
		ID:            assignmentID,
		IncidentID:    incidentID,
		VolunteerID:   volunteerID,
		CoordinatorID: &coordinatorID,
		Status:        models.AssignmentStatusPending,
	}

	// Ожидания: статус инцидента при отказе не меняется
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().
		ApplyTransition(ctx, stored, models.AssignmentStatusPending, models.AssignmentStatusRejected, nil, "").
		Return(nil, false, nil).
		Times(1)
	incidentsMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	dispatcherMock.EXPECT().
		NotifyUser(ctx, coordinatorID, notification.EventAssignmentRejected, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	assignment, err := svc.RejectAssignment(ctx, actor, assignmentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusRejected, assignment.Status)
	assert.NotNil(t, assignment.RejectedAt)
}

func TestStartAssignment_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, incidentsMock, _, dispatcherMock := newTestAssignmentService(t)
	ctx := context.Background()
	volunteerID := uuid.New()
	assignmentID := uuid.New()
	incidentID := uuid.New()
	actor := models.Actor{ID: volunteerID, Role: models.RoleVolunteer}

	stored := &models.Assignment{
		ID:          assignmentID,
		IncidentID:  incidentID,
		VolunteerID: volunteerID,
		Status:      models.AssignmentStatusAccepted,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().
		ApplyTransition(ctx, stored, models.AssignmentStatusAccepted, "",
			[]string{models.IncidentStatusAssigned},
			models.IncidentStatusInProgress).
		Return(&models.Incident{ID: incidentID, Status: models.IncidentStatusInProgress}, true, nil).
		Times(1)
	incidentsMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	dispatcherMock.EXPECT().
		NotifyAll(ctx, notification.EventIncidentStatusChanged, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	assignment, err := svc.StartAssignment(ctx, actor, assignmentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusInProgress, assignment.Status)
	assert.NotNil(t, assignment.StartedAt)
}

func TestStartAssignment_IncidentUnchanged_NoBroadcast(t *testing.T) {
	// Подготовка
	svc, repoMock, incidentsMock, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	volunteerID := uuid.New()
	assignmentID := uuid.New()
	incidentID := uuid.New()
	actor := models.Actor{ID: volunteerID, Role: models.RoleVolunteer}

	stored := &models.Assignment{
		ID:          assignmentID,
		IncidentID:  incidentID,
		VolunteerID: volunteerID,
		Status:      models.AssignmentStatusAccepted,
	}

	// Ожидания: инцидент уже in-progress, рассылки нет
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().
		ApplyTransition(ctx, stored, models.AssignmentStatusAccepted, "", gomock.Any(), models.IncidentStatusInProgress).
		Return(&models.Incident{ID: incidentID, Status: models.IncidentStatusInProgress}, false, nil).
		Times(1)
	incidentsMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)

	// Действие
	_, err := svc.StartAssignment(ctx, actor, assignmentID)

	// Проверки
	require.NoError(t, err)
}

func TestCompleteAssignment_LastOneResolvesIncident(t *testing.T) {
	// Подготовка
	svc, repoMock, incidentsMock, _, dispatcherMock := newTestAssignmentService(t)
	ctx := context.Background()
	volunteerID := uuid.New()
	assignmentID := uuid.New()
	incidentID := uuid.New()
	actor := models.Actor{ID: volunteerID, Role: models.RoleVolunteer}
	rating := 5

	stored := &models.Assignment{
		ID:          assignmentID,
		IncidentID:  incidentID,
		VolunteerID: volunteerID,
		Status:      models.AssignmentStatusInProgress,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().
		Finish(ctx, stored, models.AssignmentStatusInProgress, models.AssignmentStatusCompleted).
		Return(&models.Incident{ID: incidentID, Status: models.IncidentStatusResolved}, true, nil).
		Times(1)
	incidentsMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	dispatcherMock.EXPECT().
		NotifyAll(ctx, notification.EventIncidentStatusChanged, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	assignment, err := svc.CompleteAssignment(ctx, actor, assignmentID, service.CompleteAssignmentInput{
		Rating:   &rating,
		Feedback: "Все сделано",
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusCompleted, assignment.Status)
	assert.NotNil(t, assignment.CompletedAt)
	require.NotNil(t, assignment.Rating)
	assert.Equal(t, 5, *assignment.Rating)
}

func TestCompleteAssignment_InvalidRating(t *testing.T) {
	// Подготовка
	svc, _, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}
	rating := 6

	// Действие
	assignment, err := svc.CompleteAssignment(ctx, actor, uuid.New(), service.CompleteAssignmentInput{
		Rating: &rating,
	})

	// Проверки
	assert.Nil(t, assignment)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestCancelAssignment_NotCoordinator(t *testing.T) {
	// Подготовка
	svc, _, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Действие
	assignment, err := svc.CancelAssignment(ctx, actor, uuid.New())

	// Проверки
	assert.Nil(t, assignment)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestCancelAssignment_TerminalStatus(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	coordinator := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	assignmentID := uuid.New()

	stored := &models.Assignment{
		ID:     assignmentID,
		Status: models.AssignmentStatusCompleted,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)

	// Действие
	assignment, err := svc.CancelAssignment(ctx, coordinator, assignmentID)

	// Проверки
	assert.Nil(t, assignment)
	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestCancelAssignment_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, incidentsMock, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	coordinator := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	assignmentID := uuid.New()
	incidentID := uuid.New()

	stored := &models.Assignment{
		ID:         assignmentID,
		IncidentID: incidentID,
		Status:     models.AssignmentStatusPending,
	}

	// Ожидания: не последнее открытое назначение, инцидент не трогаем
	repoMock.EXPECT().GetByID(ctx, assignmentID).Return(stored, nil).Times(1)
	repoMock.EXPECT().
		Finish(ctx, stored, models.AssignmentStatusPending, models.AssignmentStatusCancelled).
		Return(nil, false, nil).
		Times(1)
	incidentsMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)

	// Действие
	assignment, err := svc.CancelAssignment(ctx, coordinator, assignmentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusCancelled, assignment.Status)
	assert.NotNil(t, assignment.CancelledAt)
}

func TestListAssignments_VolunteerScopedToOwn(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	volunteerID := uuid.New()
	actor := models.Actor{ID: volunteerID, Role: models.RoleVolunteer}

	// Ожидания: фильтр принудительно сужается до собственных назначений
	repoMock.EXPECT().
		List(ctx, gomock.Cond(func(x any) bool {
			f, ok := x.(service.AssignmentFilter)
			return ok && f.VolunteerID != nil && *f.VolunteerID == volunteerID
		})).
		Return([]*models.Assignment{}, nil).
		Times(1)

	// Действие
	_, err := svc.ListAssignments(ctx, actor, service.AssignmentFilter{})

	// Проверки
	require.NoError(t, err)
}

func TestGetActivityReport_Aggregates(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	coordinator := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	volunteerA := uuid.New()
	volunteerB := uuid.New()
	rating4, rating5 := 4, 5

	assignments := []*models.Assignment{
		{VolunteerID: volunteerA, Status: models.AssignmentStatusCompleted, DistanceM: 1000, Rating: &rating4},
		{VolunteerID: volunteerA, Status: models.AssignmentStatusRejected, DistanceM: 500},
		{VolunteerID: volunteerB, Status: models.AssignmentStatusCompleted, DistanceM: 2000, Rating: &rating5},
	}

	// Ожидания
	repoMock.EXPECT().List(ctx, gomock.Any()).Return(assignments, nil).Times(1)

	// Действие
	report, err := svc.GetActivityReport(ctx, coordinator, service.AssignmentFilter{})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalAssignments)
	assert.Equal(t, 2, report.ByStatus[models.AssignmentStatusCompleted])
	assert.Equal(t, 1, report.ByStatus[models.AssignmentStatusRejected])
	assert.Equal(t, 3500.0, report.TotalDistanceM)
	assert.InDelta(t, 4.5, report.AverageRating, 0.0001)
	assert.Equal(t, 2, report.ByVolunteer[volunteerA.String()].Total)
	assert.Equal(t, 1, report.ByVolunteer[volunteerA.String()].Completed)
	assert.Equal(t, 1, report.ByVolunteer[volunteerB.String()].Completed)
}

func TestGetActivityReport_NotCoordinator(t *testing.T) {
	// Подготовка
	svc, _, _, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Действие
	report, err := svc.GetActivityReport(ctx, actor, service.AssignmentFilter{})

	// Проверки
	assert.Nil(t, report)
	assert.True(t, apperrors.IsUnauthorized(err))
}
