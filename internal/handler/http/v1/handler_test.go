package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/config"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/notification"
	"github.com/shenikar/relief_coordination_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testJWTSecret = "test-secret"

type testMocks struct {
	incidents   *mocks.MockIncidentService
	assignments *mocks.MockAssignmentService
	matching    *mocks.MockMatchingService
	skills      *mocks.MockSkillService
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := testMocks{
		incidents:   mocks.NewMockIncidentService(ctrl),
		assignments: mocks.NewMockAssignmentService(ctrl),
		matching:    mocks.NewMockMatchingService(ctrl),
		skills:      mocks.NewMockSkillService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		JWTSecret:                testJWTSecret,
		DefaultMatchRadiusMeters: 10000,
	}

	hub := notification.NewHub(logger)
	handler := NewHandler(m.incidents, m.assignments, m.matching, m.skills, hub, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeToken выписывает валидный JWT для тестового пользователя
func makeToken(t *testing.T, userID uuid.UUID, role string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestReportIncident_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	userID := uuid.New()
	incidentID := uuid.New()
	token := makeToken(t, userID, models.RoleCitizen)

	reqBody := ReportIncidentRequest{
		Title:     "Flooded underpass",
		Latitude:  55.7558,
		Longitude: 37.6173,
	}

	m.incidents.EXPECT().
		ReportIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, actor models.Actor, inc *models.Incident) error {
			assert.Equal(t, userID, actor.ID) // Идентичность берется из токена
			inc.ID = incidentID
			inc.Status = models.IncidentStatusReported
			return nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes), authHeader(token))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, reqBody.Title, resp.Title)
}

func TestReportIncident_ValidationError(t *testing.T) {
	_, m, router := newTestHandler(t)
	token := makeToken(t, uuid.New(), models.RoleCitizen)
	reqBody := ReportIncidentRequest{ // Отсутствует Title
		Latitude:  55.7558,
		Longitude: 37.6173,
	}

	m.incidents.EXPECT().ReportIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes), authHeader(token))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Title' failed on the 'required' tag")
}

func TestReportIncident_MissingToken(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ReportIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(ReportIncidentRequest{Title: "x", Latitude: 1, Longitude: 1})
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization token required")
}

func TestReportIncident_InvalidToken(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ReportIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(ReportIncidentRequest{Title: "x", Latitude: 1, Longitude: 1})
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes), authHeader("not-a-jwt"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization token")
}

func TestGetIncident_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidentID := uuid.New()
	token := makeToken(t, uuid.New(), models.RoleCitizen)

	m.incidents.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, apperrors.NewNotFound("incident", incidentID.String())).
		Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/incidents/%s", incidentID.String()), nil, authHeader(token))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestGetIncident_InvalidID(t *testing.T) {
	_, m, router := newTestHandler(t)
	token := makeToken(t, uuid.New(), models.RoleCitizen)

	m.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incidents/invalid-uuid", nil, authHeader(token))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid incident ID")
}

func TestVerifyIncident_Forbidden(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidentID := uuid.New()
	token := makeToken(t, uuid.New(), models.RoleVolunteer)

	m.incidents.EXPECT().
		VerifyIncident(gomock.Any(), gomock.Any(), incidentID).
		Return(nil, apperrors.NewUnauthorized("only coordinators can verify incidents")).
		Times(1)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/incidents/%s/verify", incidentID.String()), nil, authHeader(token))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "only coordinators")
}

func TestCreateAssignment_Conflict(t *testing.T) {
	_, m, router := newTestHandler(t)
	token := makeToken(t, uuid.New(), models.RoleCoordinator)
	reqBody := CreateAssignmentRequest{
		IncidentID:  uuid.New(),
		VolunteerID: uuid.New(),
	}

	m.assignments.EXPECT().
		CreateAssignment(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperrors.NewConflict("volunteer is already assigned to this incident")).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/assignments", bytes.NewBuffer(bodyBytes), authHeader(token))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already assigned")
}

func TestAcceptAssignment_InvalidTransition(t *testing.T) {
	_, m, router := newTestHandler(t)
	assignmentID := uuid.New()
	volunteerID := uuid.New()
	token := makeToken(t, volunteerID, models.RoleVolunteer)

	m.assignments.EXPECT().
		AcceptAssignment(gomock.Any(), gomock.Any(), assignmentID).
		Return(nil, apperrors.NewInvalidTransition("accept", models.AssignmentStatusRejected, models.AssignmentStatusPending)).
		Times(1)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/assignments/%s/accept", assignmentID.String()), nil, authHeader(token))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot accept assignment")
}

func TestCompleteAssignment_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	assignmentID := uuid.New()
	volunteerID := uuid.New()
	token := makeToken(t, volunteerID, models.RoleVolunteer)
	rating := 5

	reqBody := CompleteAssignmentRequest{Rating: &rating, Feedback: "done"}
	completed := &models.Assignment{
		ID:          assignmentID,
		VolunteerID: volunteerID,
		Status:      models.AssignmentStatusCompleted,
		Rating:      &rating,
	}

	m.assignments.EXPECT().
		CompleteAssignment(gomock.Any(), gomock.Any(), assignmentID, gomock.Any()).
		Return(completed, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/assignments/%s/complete", assignmentID.String()), bytes.NewBuffer(bodyBytes), authHeader(token))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AssignmentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusCompleted, resp.Status)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 5, *resp.Rating)
}

func TestFindVolunteers_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidentID := uuid.New()
	token := makeToken(t, uuid.New(), models.RoleCoordinator)

	candidates := []*models.MatchCandidate{
		{
			Volunteer: models.VolunteerSummary{ID: uuid.New(), Name: "Анна"},
			MatchedSkills: []models.MatchedSkill{
				{Skill: "first-aid", Level: models.LevelAdvanced},
			},
			Score:     3,
			DistanceM: 1200,
		},
	}

	m.matching.EXPECT().
		FindCandidates(gomock.Any(), incidentID, 5000.0).
		Return(candidates, nil).
		Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/incidents/%s/volunteers?radius=5000", incidentID.String()), nil, authHeader(token))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []MatchCandidateResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, 3, resp[0].Score)
	assert.Equal(t, "Анна", resp[0].Volunteer.Name)
}

func TestVerifySkill_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	userID := uuid.New()
	token := makeToken(t, uuid.New(), models.RoleCoordinator)

	reqBody := VerifySkillRequest{UserID: userID}
	verified := &models.VolunteerSkill{Name: "first-aid", Level: models.LevelAdvanced, Verified: true}

	m.skills.EXPECT().
		VerifySkill(gomock.Any(), gomock.Any(), userID, "first-aid").
		Return(verified, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/skills/first-aid/verify", bytes.NewBuffer(bodyBytes), authHeader(token))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp VolunteerSkillDTO
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Verified)
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestJWTAuthMiddleware_TokenFromQuery(t *testing.T) {
	// Токен в query-параметре используется websocket-клиентами
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{JWTSecret: testJWTSecret}
	userID := uuid.New()

	router.Use(JWTAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		actor := actorFromContext(c)
		assert.Equal(t, userID, actor.ID)
		assert.Equal(t, models.RoleVolunteer, actor.Role)
		c.Status(http.StatusOK)
	})

	token := makeToken(t, userID, models.RoleVolunteer)
	w := makeRequest(router, "GET", "/test?token="+token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_WrongSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{JWTSecret: "another-secret"}

	router.Use(JWTAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token := makeToken(t, uuid.New(), models.RoleVolunteer)
	w := makeRequest(router, "GET", "/test", nil, authHeader(token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization token")
}
