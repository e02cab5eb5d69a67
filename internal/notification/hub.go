package notification

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client - одно websocket-подключение авторизованного пользователя
type Client struct {
	UserID uuid.UUID
	Role   string
	conn   *websocket.Conn
	send   chan []byte
}

// NewClient создает клиента поверх установленного websocket-соединения
func NewClient(userID uuid.UUID, role string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Role:   role,
		conn:   conn,
		send:   make(chan []byte, 16),
	}
}

// WritePump пишет исходящие события в соединение до его закрытия.
// Запускается в отдельной горутине на каждое подключение.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// Hub хранит подключенных клиентов и раздает им события по адресату
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *logrus.Logger
}

// NewHub создает новый Hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register добавляет клиента в хаб
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.WithFields(logrus.Fields{
		"user_id": c.UserID,
		"role":    c.Role,
	}).Debug("Websocket client registered")
}

// Unregister удаляет клиента и закрывает его канал отправки
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Dispatch раздает сериализованное событие всем подходящим клиентам.
// Медленные клиенты пропускаются: гарантия доставки не предоставляется.
func (h *Hub) Dispatch(event Event, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !matches(event, c) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.logger.WithField("user_id", c.UserID).Warn("Websocket client is slow, dropping event")
		}
	}
}

func matches(event Event, c *Client) bool {
	switch event.Target {
	case TargetUser:
		return c.UserID == event.UserID
	case TargetRole:
		return c.Role == event.Role
	case TargetAll:
		return true
	}
	return false
}
