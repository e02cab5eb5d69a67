package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shenikar/relief_coordination_system/internal/config"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	ctxUserIDKey = "user_id"
	ctxRoleKey   = "user_role"
)

// JWTAuthMiddleware - middleware аутентификации по JWT.
// Токен выдает внешний сервис аутентификации; здесь только извлекаются
// идентичность и роль действующего пользователя для авторизации операций.
func JWTAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			log.Warn("Authorization token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		actor, err := parseActor(tokenString, cfg.JWTSecret)
		if err != nil {
			log.WithError(err).Warn("Invalid authorization token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization token"})
			return
		}

		c.Set(ctxUserIDKey, actor.ID)
		c.Set(ctxRoleKey, actor.Role)
		c.Next()
	}
}

// extractToken достает токен из заголовка Authorization: Bearer или
// из query-параметра token (для websocket-подключений)
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// parseActor проверяет подпись токена и собирает Actor из claims
func parseActor(tokenString, secret string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Actor{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return models.Actor{}, fmt.Errorf("failed to get token subject: %w", err)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return models.Actor{}, fmt.Errorf("token subject is not a valid user id: %w", err)
	}

	role, _ := claims["role"].(string)
	if role == "" {
		return models.Actor{}, fmt.Errorf("token role claim is missing")
	}

	return models.Actor{ID: userID, Role: role}, nil
}

// actorFromContext собирает Actor из значений, положенных middleware
func actorFromContext(c *gin.Context) models.Actor {
	actor := models.Actor{}
	if id, ok := c.Get(ctxUserIDKey); ok {
		actor.ID, _ = id.(uuid.UUID)
	}
	if role, ok := c.Get(ctxRoleKey); ok {
		actor.Role, _ = role.(string)
	}
	return actor
}
