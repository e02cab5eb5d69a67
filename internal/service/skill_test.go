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

// newTestSkillService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestSkillService(t *testing.T) (service.SkillService, *mocks.MockUserRepository, *notification_mocks.MockDispatcher) {
	ctrl := gomock.NewController(t)
	usersMock := mocks.NewMockUserRepository(ctrl)
	dispatcherMock := notification_mocks.NewMockDispatcher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := service.NewSkillService(usersMock, logger, dispatcherMock)
	return svc, usersMock, dispatcherMock
}

func TestAddSkill_StartsUnverified(t *testing.T) {
	// Подготовка
	svc, usersMock, _ := newTestSkillService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}
	verifiedBy := uuid.New()

	// Ожидания: флаг подтверждения сбрасывается независимо от входа
	usersMock.EXPECT().
		AddSkill(ctx, actor.ID, gomock.Cond(func(x any) bool {
			s, ok := x.(models.VolunteerSkill)
			return ok && !s.Verified && s.VerifiedBy == nil && s.Level == models.LevelExpert
		})).
		Return(nil).
		Times(1)

	// Действие
	err := svc.AddSkill(ctx, actor, models.VolunteerSkill{
		Name:       "first-aid",
		Level:      models.LevelExpert,
		Verified:   true,
		VerifiedBy: &verifiedBy,
	})

	// Проверки
	require.NoError(t, err)
}

func TestAddSkill_DefaultsLevel(t *testing.T) {
	// Подготовка
	svc, usersMock, _ := newTestSkillService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Ожидания
	usersMock.EXPECT().
		AddSkill(ctx, actor.ID, gomock.Cond(func(x any) bool {
			s, ok := x.(models.VolunteerSkill)
			return ok && s.Level == models.LevelIntermediate
		})).
		Return(nil).
		Times(1)

	// Действие
	err := svc.AddSkill(ctx, actor, models.VolunteerSkill{Name: "logistics"})

	// Проверки
	require.NoError(t, err)
}

func TestAddSkill_EmptyName(t *testing.T) {
	// Подготовка
	svc, _, _ := newTestSkillService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Действие
	err := svc.AddSkill(ctx, actor, models.VolunteerSkill{})

	// Проверки
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestListSkills_OtherUserRequiresCoordinator(t *testing.T) {
	// Подготовка
	svc, _, _ := newTestSkillService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Действие
	skills, err := svc.ListSkills(ctx, actor, uuid.New())

	// Проверки
	assert.Nil(t, skills)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestVerifySkill_Success_NotifiesOwner(t *testing.T) {
	// Подготовка
	svc, usersMock, dispatcherMock := newTestSkillService(t)
	ctx := context.Background()
	coordinator := models.Actor{ID: uuid.New(), Role: models.RoleCoordinator}
	userID := uuid.New()
	verified := &models.VolunteerSkill{
		Name:       "first-aid",
		Level:      models.LevelAdvanced,
		Verified:   true,
		VerifiedBy: &coordinator.ID,
	}

	// Ожидания
	usersMock.EXPECT().
		VerifySkill(ctx, userID, "first-aid", coordinator.ID).
		Return(verified, nil).
		Times(1)
	dispatcherMock.EXPECT().
		NotifyUser(ctx, userID, notification.EventSkillVerified, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	skill, err := svc.VerifySkill(ctx, coordinator, userID, "first-aid")

	// Проверки
	require.NoError(t, err)
	assert.True(t, skill.Verified)
}

func TestVerifySkill_NotCoordinator(t *testing.T) {
	// Подготовка
	svc, _, _ := newTestSkillService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleVolunteer}

	// Действие
	skill, err := svc.VerifySkill(ctx, actor, uuid.New(), "first-aid")

	// Проверки
	assert.Nil(t, skill)
	assert.True(t, apperrors.IsUnauthorized(err))
}
