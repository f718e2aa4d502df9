package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/deepjyoti31/spec10x/internal/pkg/redis"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

const (
	namespaceEvents = "/events"
	redisChanEvents = "sx:gateway:events"

	// EventInterviewStatus notifies a user that an interview moved to a new
	// processing stage.
	EventInterviewStatus = "INTERVIEW_STATUS"
	// EventThemesUpdated notifies a user that synthesis changed their themes.
	EventThemesUpdated = "THEMES_UPDATED"
)

// Message is the envelope used by hub broadcasts and Redis fan-out. Room is
// the target user's ID; empty means every connected client.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	Room    string      `json:"room,omitempty"`
}

type gatewayPayload struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clientMeta struct {
	sid  string
	room string
}

// InterviewStatus is the payload carried by EventInterviewStatus.
type InterviewStatus struct {
	InterviewID  string `json:"interview_id"`
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	InsightCount int    `json:"insight_count,omitempty"`
}

// Hub manages socket.io connections grouped into per-user rooms, with Redis
// pub/sub fan-out across server instances.
type Hub struct {
	mu sync.RWMutex

	sidRoom   map[string]string
	sockets   map[string]*socketio.Socket
	roomCount map[string]int

	broadcast  chan Message
	register   chan clientMeta
	unregister chan clientMeta

	rc             *pkgredis.Client
	logger         *zap.Logger
	sio            *socketio.Server
	tokenValidator func(string) (string, error)
}

// NewHub builds the hub. tokenValidator maps a raw token to a user ID.
func NewHub(rc *pkgredis.Client, logger *zap.Logger, tokenValidator func(string) (string, error)) *Hub {
	sio := socketio.NewServer(nil, nil)
	h := &Hub{
		sidRoom:        make(map[string]string),
		sockets:        make(map[string]*socketio.Socket),
		roomCount:      make(map[string]int),
		broadcast:      make(chan Message, 256),
		register:       make(chan clientMeta, 256),
		unregister:     make(chan clientMeta, 256),
		rc:             rc,
		logger:         logger,
		sio:            sio,
		tokenValidator: tokenValidator,
	}
	h.registerNamespace()
	return h
}

func (h *Hub) registerNamespace() {
	ns := h.sio.Of(namespaceEvents, nil)
	_ = ns.On("connection", func(args ...any) {
		client, ok := args[0].(*socketio.Socket)
		if !ok {
			return
		}

		token := normalizeToken(extractToken(client))
		var userID string
		if token != "" && h.tokenValidator != nil {
			userID, _ = h.tokenValidator(token)
		}
		if userID == "" {
			_ = client.Emit("message", gatewayPayload{Type: "AUTH_FAILED", Data: "auth failed"})
			client.Disconnect(true)
			return
		}

		sid := string(client.Id())
		h.mu.Lock()
		h.sockets[sid] = client
		h.mu.Unlock()

		h.register <- clientMeta{sid: sid, room: userID}
		_ = client.Emit("message", gatewayPayload{Type: "GATEWAY_CONNECT", Data: "WebSocket connected"})

		_ = client.On("disconnect", func(_ ...any) {
			h.mu.Lock()
			delete(h.sockets, sid)
			h.mu.Unlock()
			h.unregister <- clientMeta{sid: sid, room: userID}
		})
	})
}

func extractToken(client *socketio.Socket) string {
	handshake := client.Handshake()
	if handshake == nil {
		return ""
	}
	if token := firstValueFromMultiMap(handshake.Query, "token"); token != "" {
		return token
	}
	if token := firstValueFromMultiMap(handshake.Headers, "authorization"); token != "" {
		return token
	}
	return ""
}

func firstValueFromMultiMap(values map[string][]string, key string) string {
	if len(values) == 0 {
		return ""
	}
	for k, list := range values {
		if !strings.EqualFold(strings.TrimSpace(k), key) || len(list) == 0 {
			continue
		}
		v := strings.TrimSpace(list[0])
		if v != "" {
			return v
		}
	}
	return ""
}

func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

// Run starts the hub loop and Redis subscriber.
func (h *Hub) Run(ctx context.Context) {
	if h.rc != nil {
		go h.subscribeRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.sio.Close(nil)
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.broadcast:
			h.deliver(msg)

			if h.rc != nil {
				data, err := json.Marshal(msg)
				if err != nil {
					continue
				}
				if err := h.rc.Publish(ctx, redisChanEvents, string(data)); err != nil && h.logger != nil {
					h.logger.Warn("gateway publish failed", zap.Error(err))
				}
			}
		}
	}
}

func (h *Hub) registerClient(c clientMeta) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if oldRoom, ok := h.sidRoom[c.sid]; ok {
		if oldRoom == c.room {
			return
		}
		if h.roomCount[oldRoom] > 0 {
			h.roomCount[oldRoom]--
		}
	}

	h.sidRoom[c.sid] = c.room
	h.roomCount[c.room]++
}

func (h *Hub) unregisterClient(c clientMeta) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.sidRoom[c.sid]
	if !ok {
		return
	}

	delete(h.sidRoom, c.sid)
	if h.roomCount[room] > 0 {
		h.roomCount[room]--
	}
}

// deliver emits to every socket whose room matches (all sockets when the
// room is empty).
func (h *Hub) deliver(msg Message) {
	payload := gatewayPayload{Type: msg.Event, Data: msg.Payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sid, client := range h.sockets {
		if msg.Room != "" && h.sidRoom[sid] != msg.Room {
			continue
		}
		_ = client.Emit("message", payload)
	}
}

// subscribeRedis listens for broadcasts from other server instances.
func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.rc.Subscribe(ctx, redisChanEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return

		case redisMsg, ok := <-ch:
			if !ok {
				return
			}
			var msg Message
			if err := json.Unmarshal([]byte(redisMsg.Payload), &msg); err != nil {
				continue
			}
			h.deliver(msg)
		}
	}
}

// Broadcast sends an event to all clients of one user (or everyone when
// userID is empty).
func (h *Hub) Broadcast(event string, payload interface{}, userID string) {
	h.broadcast <- Message{Event: event, Payload: payload, Room: userID}
}

// PublishStatus notifies a user about an interview stage change.
func (h *Hub) PublishStatus(userID, interviewID, status, message string, insightCount int) {
	h.Broadcast(EventInterviewStatus, InterviewStatus{
		InterviewID:  interviewID,
		Status:       status,
		Message:      message,
		InsightCount: insightCount,
	}, userID)
}

// PublishThemesUpdated notifies a user that synthesis changed their themes.
func (h *Hub) PublishThemesUpdated(userID string, themeCount int) {
	h.Broadcast(EventThemesUpdated, map[string]int{"theme_count": themeCount}, userID)
}

// ClientCount returns the number of connected clients (optionally filtered
// by user).
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if userID == "" {
		return len(h.sidRoom)
	}
	return h.roomCount[userID]
}

// Handler returns the socket.io HTTP handler mounted at /socket.io.
func (h *Hub) Handler() http.Handler {
	return h.sio.ServeHandler(nil)
}

// RegisterRoutes mounts socket.io and the stats endpoint.
func RegisterRoutes(rg *gin.RouterGroup, hub *Hub) {
	handler := gin.WrapH(hub.Handler())
	rg.Any("/socket.io", handler)
	rg.Any("/socket.io/*any", handler)

	rg.GET("/gateway/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"total": hub.ClientCount(""),
		})
	})
}
