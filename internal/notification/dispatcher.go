package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	notificationQueueKey = "notification_events"
)

// Имена событий, которые публикует ядро
const (
	EventNewIncidentNearby     = "new-incident-nearby"
	EventAssignmentRequest     = "assignment-request"
	EventAssignmentAccepted    = "assignment-accepted"
	EventAssignmentRejected    = "assignment-rejected"
	EventIncidentEscalated     = "incident-escalated"
	EventIncidentStatusChanged = "incident-status-changed"
	EventSkillVerified         = "skill-verified"
)

// Адресаты события
const (
	TargetUser = "user"
	TargetRole = "role"
	TargetAll  = "all"
)

// Event - конверт уведомления в очереди доставки
type Event struct {
	Target    string    `json:"target"`
	UserID    uuid.UUID `json:"user_id,omitempty"`
	Role      string    `json:"role,omitempty"`
	Name      string    `json:"event"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Dispatcher - контракт отправки уведомлений. Доставка best-effort:
// сервисы логируют ошибку публикации и никогда не откатывают из-за нее
// состояние операции.
type Dispatcher interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, event string, payload any) error
	NotifyRole(ctx context.Context, role string, event string, payload any) error
	NotifyAll(ctx context.Context, event string, payload any) error
}

// RedisDispatcher - реализация Dispatcher поверх очереди Redis.
// События забирает Worker и раздает подключенным клиентам.
type RedisDispatcher struct {
	redisClient *redis.Client
}

// NewRedisDispatcher создает новый RedisDispatcher
func NewRedisDispatcher(client *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{
		redisClient: client,
	}
}

// NotifyUser ставит в очередь событие для конкретного пользователя
func (d *RedisDispatcher) NotifyUser(ctx context.Context, userID uuid.UUID, event string, payload any) error {
	return d.publish(ctx, Event{
		Target:    TargetUser,
		UserID:    userID,
		Name:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}

// NotifyRole ставит в очередь событие для всех пользователей роли
func (d *RedisDispatcher) NotifyRole(ctx context.Context, role string, event string, payload any) error {
	return d.publish(ctx, Event{
		Target:    TargetRole,
		Role:      role,
		Name:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}

// NotifyAll ставит в очередь событие для всех подключенных клиентов
func (d *RedisDispatcher) NotifyAll(ctx context.Context, event string, payload any) error {
	return d.publish(ctx, Event{
		Target:    TargetAll,
		Name:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}

func (d *RedisDispatcher) publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := d.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification event to Redis: %w", err)
	}
	return nil
}
